// Package openapi maintains the machine readable API description served at
// /docs. Routes register themselves as they are wired so the document never
// drifts from the router.
package openapi

import (
	"encoding/json"
	"net/http"
	"strings"
	"sync"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/labstack/echo/v4"
)

type OpenAPI struct {
	mu   sync.RWMutex
	spec *openapi3.T
}

func New(title, version string) *OpenAPI {
	return &OpenAPI{
		spec: &openapi3.T{
			OpenAPI: "3.0.3",
			Info: &openapi3.Info{
				Title:   title,
				Version: version,
			},
			Paths:      openapi3.NewPaths(),
			Components: &openapi3.Components{},
		},
	}
}

func (o *OpenAPI) Description(desc string) *OpenAPI {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.spec.Info.Description = desc
	return o
}

func (o *OpenAPI) Server(url, description string) *OpenAPI {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.spec.Servers = append(o.spec.Servers, &openapi3.Server{URL: url, Description: description})
	return o
}

func (o *OpenAPI) Tag(name, description string) *OpenAPI {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.spec.Tags = append(o.spec.Tags, &openapi3.Tag{Name: name, Description: description})
	return o
}

func (o *OpenAPI) BearerAuth(name, description string) *OpenAPI {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.spec.Components.SecuritySchemes == nil {
		o.spec.Components.SecuritySchemes = make(openapi3.SecuritySchemes)
	}
	o.spec.Components.SecuritySchemes[name] = &openapi3.SecuritySchemeRef{
		Value: &openapi3.SecurityScheme{
			Type:         "http",
			Scheme:       "bearer",
			BearerFormat: "JWT",
			Description:  description,
		},
	}
	return o
}

// Route describes one operation before it is committed to the document.
type Route struct {
	openapi   *OpenAPI
	method    string
	path      string
	operation *openapi3.Operation
}

func (o *OpenAPI) Document(method, path string) *Route {
	return &Route{
		openapi:   o,
		method:    method,
		path:      path,
		operation: &openapi3.Operation{Responses: openapi3.NewResponses()},
	}
}

func (r *Route) Summary(summary string) *Route {
	r.operation.Summary = summary
	return r
}

func (r *Route) Tags(tags ...string) *Route {
	r.operation.Tags = append(r.operation.Tags, tags...)
	return r
}

func (r *Route) Secured(scheme string) *Route {
	r.operation.Security = openapi3.NewSecurityRequirements().
		With(openapi3.NewSecurityRequirement().Authenticate(scheme))
	return r
}

func (r *Route) Response(status int, description string) *Route {
	r.operation.AddResponse(status, openapi3.NewResponse().WithDescription(description))
	return r
}

// Add commits the operation and auto-registers path parameters from echo's
// :name segments.
func (r *Route) Add() {
	path := echoPathToOpenAPI(r.path)
	for _, part := range strings.Split(r.path, "/") {
		if !strings.HasPrefix(part, ":") {
			continue
		}
		r.operation.Parameters = append(r.operation.Parameters, &openapi3.ParameterRef{
			Value: &openapi3.Parameter{
				Name:     strings.TrimPrefix(part, ":"),
				In:       "path",
				Required: true,
				Schema:   &openapi3.SchemaRef{Value: &openapi3.Schema{Type: &openapi3.Types{"string"}}},
			},
		})
	}

	o := r.openapi
	o.mu.Lock()
	defer o.mu.Unlock()

	pathItem := o.spec.Paths.Find(path)
	if pathItem == nil {
		pathItem = &openapi3.PathItem{}
		o.spec.Paths.Set(path, pathItem)
	}
	pathItem.SetOperation(strings.ToUpper(r.method), r.operation)
}

func echoPathToOpenAPI(path string) string {
	parts := strings.Split(path, "/")
	for i, part := range parts {
		if strings.HasPrefix(part, ":") {
			parts[i] = "{" + strings.TrimPrefix(part, ":") + "}"
		}
	}
	return strings.Join(parts, "/")
}

func (o *OpenAPI) JSON() ([]byte, error) {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return json.MarshalIndent(o.spec, "", "  ")
}

func (o *OpenAPI) Spec() *openapi3.T {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return o.spec
}

func (o *OpenAPI) JSONHandler() echo.HandlerFunc {
	return func(c echo.Context) error {
		data, err := o.JSON()
		if err != nil {
			return err
		}
		return c.JSONBlob(http.StatusOK, data)
	}
}
