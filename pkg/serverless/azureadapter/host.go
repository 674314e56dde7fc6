package azureadapter

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"family-finance-api/pkg/serverless"
)

// Host is the local HTTP listener the Azure Functions runtime invokes. One
// registered handler per function name; the host decodes the invocation
// payload, runs the handler against an adapter context, and encodes the
// outputs document.
type Host struct {
	handlers map[string]serverless.Handler
	logger   *logrus.Logger
}

// NewHost creates an empty custom-handler host.
func NewHost(logger *logrus.Logger) *Host {
	if logger == nil {
		logger = logrus.New()
	}
	return &Host{handlers: map[string]serverless.Handler{}, logger: logger}
}

// Register binds a function name to a handler. Registration happens at
// startup, before ListenAndServe; the map is read-only afterwards.
func (h *Host) Register(functionName string, handler serverless.Handler) {
	h.handlers[functionName] = handler
}

// ListenAndServe starts the listener on the port the Functions host assigns
// via FUNCTIONS_CUSTOMHANDLER_PORT, falling back to 8080 for local runs.
func (h *Host) ListenAndServe() error {
	port := os.Getenv("FUNCTIONS_CUSTOMHANDLER_PORT")
	if port == "" {
		port = "8080"
	}
	server := &http.Server{
		Addr:              ":" + port,
		Handler:           h,
		ReadHeaderTimeout: 10 * time.Second,
	}
	h.logger.WithField("port", port).Info("Azure custom handler listening")
	return server.ListenAndServe()
}

// ServeHTTP handles one function invocation. The Functions host addresses
// functions as POST /<FunctionName>.
func (h *Host) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	functionName := strings.Trim(r.URL.Path, "/")
	handler, ok := h.handlers[functionName]
	if !ok {
		http.Error(w, fmt.Sprintf("unknown function %q", functionName), http.StatusNotFound)
		return
	}

	var invocation InvokeRequest
	if err := json.NewDecoder(r.Body).Decode(&invocation); err != nil {
		http.Error(w, "malformed invocation payload", http.StatusBadRequest)
		return
	}

	var trigger HTTPTriggerData
	if raw, ok := invocation.Data["req"]; ok {
		if err := json.Unmarshal(raw, &trigger); err != nil {
			http.Error(w, "malformed req binding", http.StatusBadRequest)
			return
		}
	}

	c := NewContext(trigger)
	resp, err := handler(r.Context(), c)
	if err != nil {
		h.logger.WithFields(logrus.Fields{
			"function": functionName,
			"method":   trigger.Method,
			"error":    err.Error(),
		}).Error("Handler failed")
		resp, err = c.CreateServerErrorResponse("")
		if err != nil {
			http.Error(w, "response serialization failed", http.StatusInternalServerError)
			return
		}
	}

	w.Header().Set("Content-Type", serverless.ContentTypeJSON)
	if err := json.NewEncoder(w).Encode(Outputs(resp)); err != nil {
		h.logger.WithError(err).Error("Failed to encode invoke response")
	}
}
