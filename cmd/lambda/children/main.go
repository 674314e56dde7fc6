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

// route picks the handler for a child-account event. API Gateway binds the
// {id} path parameter before the event reaches us.
func route(r *handlers.Routes, event events.APIGatewayProxyRequest) serverless.Handler {
	id := event.PathParameters["id"]
	switch {
	case event.HTTPMethod == "POST" && id == "":
		return r.CreateChild
	case event.HTTPMethod == "GET" && id == "":
		return r.ListChildren
	case event.HTTPMethod == "GET" && strings.HasSuffix(event.Path, "/balance"):
		return r.GetChildBalance
	case event.HTTPMethod == "POST" && strings.HasSuffix(event.Path, "/allowance"):
		return r.PostAllowance
	case event.HTTPMethod == "GET" && id != "":
		return r.GetChild
	case event.HTTPMethod == "PUT" && id != "":
		return r.UpdateChild
	case event.HTTPMethod == "DELETE" && id != "":
		return r.DeleteChild
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
