package devserver

import (
	"bytes"
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/go-chi/chi/v5"
)

//go:embed openapi.yaml
var contractYAML []byte

// Contract returns the embedded API description.
func Contract() []byte {
	return bytes.Clone(contractYAML)
}

// contract checks request bodies against the embedded API description.
type contract struct {
	doc *openapi3.T
}

func loadContract(ctx context.Context) (*contract, error) {
	loader := openapi3.NewLoader()
	doc, err := loader.LoadFromData(contractYAML)
	if err != nil {
		return nil, fmt.Errorf("failed to load API contract: %w", err)
	}
	if err := doc.Validate(ctx); err != nil {
		return nil, fmt.Errorf("invalid API contract: %w", err)
	}
	return &contract{doc: doc}, nil
}

// operation returns the operation a routed request matched, if the
// contract describes it.
func (c *contract) operation(r *http.Request) *openapi3.Operation {
	rctx := chi.RouteContext(r.Context())
	if rctx == nil {
		return nil
	}
	template := strings.TrimPrefix(rctx.RoutePattern(), apiPrefix)
	if len(template) > 1 {
		template = strings.TrimSuffix(template, "/")
	}
	item := c.doc.Paths.Find(template)
	if item == nil {
		return nil
	}
	return item.GetOperation(r.Method)
}

// validateBody checks the JSON body of r against its operation's schema.
// The body is restored so handlers can decode it.
func (c *contract) validateBody(r *http.Request) error {
	op := c.operation(r)
	if op == nil || op.RequestBody == nil || op.RequestBody.Value == nil {
		return nil
	}
	media := op.RequestBody.Value.Content.Get("application/json")
	if media == nil || media.Schema == nil || media.Schema.Value == nil {
		return nil
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		return fmt.Errorf("failed to read body: %w", err)
	}
	r.Body = io.NopCloser(bytes.NewReader(body))

	if len(bytes.TrimSpace(body)) == 0 {
		if op.RequestBody.Value.Required {
			return fmt.Errorf("request body is required")
		}
		return nil
	}

	var value any
	if err := json.Unmarshal(body, &value); err != nil {
		return fmt.Errorf("malformed JSON: %w", err)
	}
	if err := media.Schema.Value.VisitJSON(value); err != nil {
		return fmt.Errorf("body does not match schema: %w", err)
	}
	return nil
}

// validate is middleware that rejects bodies that break the contract.
func (c *contract) validate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := c.validateBody(r); err != nil {
			logFrom(r).Debug("request rejected by contract", "error", err)
			writeError(w, http.StatusBadRequest, "Invalid request body")
			return
		}
		next.ServeHTTP(w, r)
	})
}
