// Package docs registers the API description with swag
// Regenerate from the handler annotations with:
//
//	swag init -g cmd/videotube-api/main.go -o internal/services/api/docs --instanceName api
package docs

import "github.com/swaggo/swag/v2"

const docTemplate = `{
  "openapi": "3.0.3",
  "info": {
    "title": "{{.Title}}",
    "description": "{{escape .Description}}",
    "version": "{{.Version}}"
  },
  "servers": [{"url": "{{.BasePath}}"}],
  "components": {
    "securitySchemes": {
      "BearerAuth": {"type": "http", "scheme": "bearer"}
    },
    "parameters": {
      "maxResults": {"name": "maxResults", "in": "query", "schema": {"type": "integer", "minimum": 1, "maximum": 50}},
      "pageToken": {"name": "pageToken", "in": "query", "schema": {"type": "string"}},
      "order": {"name": "order", "in": "query", "schema": {"type": "string", "enum": ["date", "rating", "relevance", "title", "videoCount", "viewCount"]}}
    },
    "schemas": {
      "ChannelInput": {
        "type": "object",
        "required": ["channelId"],
        "properties": {"channelId": {"type": "string", "example": "UCuAXFkgsw1L7xaCfnd5JJOw"}}
      },
      "MutationResult": {
        "type": "object",
        "properties": {"success": {"type": "boolean"}, "channelId": {"type": "string"}}
      },
      "ListResult": {
        "type": "object",
        "properties": {"subscriptions": {"type": "array", "items": {"type": "string"}}}
      },
      "Report": {
        "type": "object",
        "required": ["level", "message"],
        "properties": {
          "level": {"type": "string", "enum": ["error", "warning"]},
          "message": {"type": "string", "maxLength": 2000},
          "component": {"type": "string"},
          "action": {"type": "string"},
          "userId": {"type": "string"},
          "email": {"type": "string", "format": "email"},
          "context": {"type": "object", "additionalProperties": true},
          "timestamp": {"type": "string", "format": "date-time"}
        }
      }
    }
  },
  "paths": {
    "/youtube/search": {"get": {"tags": ["YouTube"], "summary": "Search videos",
      "parameters": [{"name": "query", "in": "query", "required": true, "schema": {"type": "string"}},
        {"$ref": "#/components/parameters/maxResults"}, {"$ref": "#/components/parameters/pageToken"}, {"$ref": "#/components/parameters/order"}],
      "responses": {"200": {"description": "search list response"}}}},
    "/youtube/channels": {"get": {"tags": ["YouTube"], "summary": "Search channels",
      "parameters": [{"name": "query", "in": "query", "required": true, "schema": {"type": "string"}},
        {"$ref": "#/components/parameters/maxResults"}, {"$ref": "#/components/parameters/pageToken"}, {"$ref": "#/components/parameters/order"}],
      "responses": {"200": {"description": "search list response"}}}},
    "/youtube/channels/{id}": {"get": {"tags": ["YouTube"], "summary": "Channels by comma separated id",
      "parameters": [{"name": "id", "in": "path", "required": true, "schema": {"type": "string"}}],
      "responses": {"200": {"description": "channel list response"}, "404": {"description": "Channel not found"}}}},
    "/youtube/channels/{id}/videos": {"get": {"tags": ["YouTube"], "summary": "Channel uploads",
      "parameters": [{"name": "id", "in": "path", "required": true, "schema": {"type": "string"}},
        {"$ref": "#/components/parameters/maxResults"}, {"$ref": "#/components/parameters/pageToken"}, {"$ref": "#/components/parameters/order"}],
      "responses": {"200": {"description": "search list response"}}}},
    "/youtube/videos": {"get": {"tags": ["YouTube"], "summary": "Videos by comma separated id",
      "parameters": [{"name": "id", "in": "query", "required": true, "schema": {"type": "string"}}],
      "responses": {"200": {"description": "video list response"}}}},
    "/youtube/popular": {"get": {"tags": ["YouTube"], "summary": "Most popular videos",
      "parameters": [{"name": "regionCode", "in": "query", "schema": {"type": "string"}},
        {"$ref": "#/components/parameters/maxResults"}, {"$ref": "#/components/parameters/pageToken"}],
      "responses": {"200": {"description": "video list response"}}}},
    "/youtube/related": {"get": {"tags": ["YouTube"], "summary": "Videos related to one video",
      "parameters": [{"name": "videoId", "in": "query", "required": true, "schema": {"type": "string"}},
        {"$ref": "#/components/parameters/maxResults"}, {"$ref": "#/components/parameters/pageToken"}],
      "responses": {"200": {"description": "search list response"}}}},
    "/subscriptions": {"get": {"tags": ["Subscriptions"], "summary": "The caller's subscribed channel ids",
      "security": [{"BearerAuth": []}],
      "responses": {"200": {"description": "ok", "content": {"application/json": {"schema": {"$ref": "#/components/schemas/ListResult"}}}},
        "401": {"description": "Unauthorized"}}}},
    "/subscriptions/subscribe": {"post": {"tags": ["Subscriptions"], "summary": "Subscribe to a channel",
      "security": [{"BearerAuth": []}],
      "requestBody": {"required": true, "content": {"application/json": {"schema": {"$ref": "#/components/schemas/ChannelInput"}}}},
      "responses": {"200": {"description": "ok", "content": {"application/json": {"schema": {"$ref": "#/components/schemas/MutationResult"}}}},
        "401": {"description": "Unauthorized"}}}},
    "/subscriptions/unsubscribe": {"post": {"tags": ["Subscriptions"], "summary": "Unsubscribe from a channel",
      "security": [{"BearerAuth": []}],
      "requestBody": {"required": true, "content": {"application/json": {"schema": {"$ref": "#/components/schemas/ChannelInput"}}}},
      "responses": {"200": {"description": "ok", "content": {"application/json": {"schema": {"$ref": "#/components/schemas/MutationResult"}}}},
        "401": {"description": "Unauthorized"}}}},
    "/telemetry/errors": {"post": {"tags": ["Telemetry"], "summary": "Report a client side error",
      "requestBody": {"required": true, "content": {"application/json": {"schema": {"$ref": "#/components/schemas/Report"}}}},
      "responses": {"202": {"description": "accepted"}}}},
    "/meta/health": {"get": {"tags": ["Meta"], "summary": "Health check", "responses": {"200": {"description": "ok"}}}},
    "/meta/ready": {"get": {"tags": ["Meta"], "summary": "Readiness probe with dependency checks", "responses": {"200": {"description": "ok"}}}},
    "/meta/version": {"get": {"tags": ["Meta"], "summary": "Build and version info", "responses": {"200": {"description": "ok"}}}},
    "/meta/service": {"get": {"tags": ["Meta"], "summary": "Service info and uptime", "responses": {"200": {"description": "ok"}}}},
    "/meta/cache": {"get": {"tags": ["Meta"], "summary": "Upstream response cache counters", "responses": {"200": {"description": "ok"}}}}
  }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "0.1.0",
	Host:             "",
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "VideoTube API",
	Description:      "YouTube proxy, user subscriptions and client telemetry",
	InfoInstanceName: "api",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
