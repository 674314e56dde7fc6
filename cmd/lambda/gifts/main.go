package main

import (
	"context"
	"net/http"
	"strings"

	"github.com/aws/aws-lambda-go/events"
	awslambda "github.com/aws/aws-lambda-go/lambda"

	"family-finance-api/internal/handlers"
	"family-finance-api/pkg/lambda"
	"family-finance-api/pkg/serverless"
	"family-finance-api/pkg/serverless/awsadapter"
)

func route(r *handlers.Routes, event events.APIGatewayProxyRequest) serverless.Handler {
	id := event.PathParameters["id"]
	switch {
	case event.HTTPMethod == "POST" && id == "":
		return r.CreateGift
	case event.HTTPMethod == "GET" && id == "":
		return r.ListGifts
	case event.HTTPMethod == "POST" && strings.HasSuffix(event.Path, "/contributions"):
		return r.ContributeToGift
	case event.HTTPMethod == "POST" && strings.HasSuffix(event.Path, "/close"):
		return r.CloseGift
	case event.HTTPMethod == "GET" && id != "":
		return r.GetGift
	}
	return nil
}

func handler(ctx context.Context, event events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	container, err := lambda.Container()
	if err != nil {
		return serverErrorResponse(), nil
	}

	h := route(container.Routes, event)
	if h == nil {
		return notFoundResponse(), nil
	}
	return awsadapter.Handle(h)(ctx, event)
}

func serverErrorResponse() events.APIGatewayProxyResponse {
	return events.APIGatewayProxyResponse{
		StatusCode: http.StatusInternalServerError,
		Headers:    map[string]string{"Content-Type": serverless.ContentTypeJSON},
		Body:       `{"error":{"code":"INTERNAL_SERVER_ERROR","message":"An internal server error occurred"}}`,
	}
}

func notFoundResponse() events.APIGatewayProxyResponse {
	return events.APIGatewayProxyResponse{
		StatusCode: http.StatusNotFound,
		Headers:    map[string]string{"Content-Type": serverless.ContentTypeJSON},
		Body:       `{"error":{"code":"NOT_FOUND","message":"Resource not found"}}`,
	}
}

func main() {
	awslambda.Start(handler)
}
