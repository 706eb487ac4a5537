// Package swaggerkit serves the API's OpenAPI document and the Swagger UI over it
package swaggerkit

import (
	"encoding/json"
	"net/http"
	"strings"

	phttp "videotube/internal/platform/net/http"

	docs "videotube/internal/services/api/docs"

	httpSwagger "github.com/swaggo/http-swagger"
)

const docsRoot = "/api/docs"

// Options controls Mount
type Options struct {
	Enabled bool
	// TitleSuffix is appended to info.title, e.g. "(staging)"
	TitleSuffix string
}

type obj = map[string]any

// Mount serves the UI under /api/docs/ and the document at /api/docs/doc.json
func Mount(r phttp.Router, o Options) {
	if !o.Enabled {
		return
	}
	r.Get(docsRoot, func(w http.ResponseWriter, req *http.Request) {
		http.Redirect(w, req, docsRoot+"/", http.StatusPermanentRedirect)
	})
	r.Get(docsRoot+"/doc.json", func(w http.ResponseWriter, _ *http.Request) {
		var spec obj
		if err := json.Unmarshal([]byte(docReader()), &spec); err != nil {
			http.Error(w, "spec parse error", http.StatusInternalServerError)
			return
		}
		patch(spec, o.TitleSuffix)
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.Header().Set("Cache-Control", "no-store")
		_ = json.NewEncoder(w).Encode(spec)
	})
	r.Handle(docsRoot+"/*", httpSwagger.Handler(
		httpSwagger.InstanceName(docs.SwaggerInfo.InstanceName()),
		httpSwagger.URL(docsRoot+"/doc.json"),
	))
}

var docReader = func() string { return docs.SwaggerInfo.ReadDoc() }

// patch fills in what the annotations leave out: the OAS version the UI can
// render, a servers entry, the error envelope schema and 400/500 examples
func patch(spec obj, titleSuffix string) {
	ensureServers(spec, docs.SwaggerInfo.BasePath)
	if info, ok := spec["info"].(obj); ok && titleSuffix != "" {
		if title, ok := info["title"].(string); ok {
			info["title"] = title + " " + titleSuffix
		}
	}
	child(child(spec, "components"), "schemas")["ErrorResponse"] = errorSchema
	eachOperation(spec, func(responses obj) {
		setDefault(responses, "400", errorExample("Bad Request", 400, 8, "query is required", "query"))
		setDefault(responses, "500", errorExample("Internal Server Error", 500, 1, "panic recovered", ""))
	})
}

// ensureServers forces OAS 3.0.3 since the UI cannot render 2.0 or 3.1 here
func ensureServers(spec obj, url string) {
	delete(spec, "swagger")
	spec["openapi"] = "3.0.3"
	if _, ok := spec["servers"]; !ok {
		spec["servers"] = []any{obj{"url": url}}
	}
}

// child returns m[key] as an object, creating it when absent
func child(m obj, key string) obj {
	c, ok := m[key].(obj)
	if !ok {
		c = obj{}
		m[key] = c
	}
	return c
}

func setDefault(m obj, key string, v any) {
	if _, ok := m[key]; !ok {
		m[key] = v
	}
}

func eachOperation(spec obj, fn func(responses obj)) {
	paths, _ := spec["paths"].(obj)
	for _, p := range paths {
		methods, _ := p.(obj)
		for method, op := range methods {
			if o, ok := op.(obj); ok && !strings.HasPrefix(method, "x-") {
				fn(child(o, "responses"))
			}
		}
	}
}

var errorSchema = obj{
	"type":        "object",
	"description": "Standard error envelope",
	"required":    []any{"status_code", "status"},
	"properties": obj{
		"status_code": obj{"type": "integer", "format": "int32"},
		"status":      obj{"type": "string"},
		"request_id":  obj{"type": "string"},
		"error": obj{
			"type": "object",
			"properties": obj{
				"code":    obj{"type": "integer", "format": "int32"},
				"message": obj{"type": "string"},
				"field":   obj{"type": "string"},
			},
		},
	},
}

func errorExample(desc string, status, code int, msg, field string) obj {
	wire := obj{"code": code, "message": msg}
	if field != "" {
		wire["field"] = field
	}
	return obj{
		"description": desc,
		"content": obj{"application/json": obj{
			"schema": obj{"$ref": "#/components/schemas/ErrorResponse"},
			"example": obj{
				"status_code": status,
				"status":      desc,
				"error":       wire,
				"request_id":  "579f33bf50b1/abc-000001",
			},
		}},
	}
}
