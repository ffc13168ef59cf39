// Package docs holds the OpenAPI document served at /api/docs
package docs

import "github.com/swaggo/swag/v2"

const docTemplate = `{
  "openapi": "3.0.3",
  "info": {
    "title": "{{.Title}}",
    "description": "{{.Description}}",
    "version": "{{.Version}}"
  },
  "paths": {
    "/query": {
      "post": {
        "tags": ["query"],
        "summary": "Retrieve every document matching a query",
        "requestBody": {
          "required": true,
          "content": {"application/json": {"schema": {"$ref": "#/components/schemas/QueryInput"}}}
        },
        "responses": {
          "200": {
            "description": "Documents in window order",
            "content": {"application/json": {"schema": {"$ref": "#/components/schemas/QueryEnvelope"}}}
          },
          "401": {"description": "Missing or unknown API key"},
          "415": {"description": "Body is not application/json"},
          "422": {"description": "The search rejected the query or a window could not be split"},
          "502": {"description": "The search endpoint answered with a non-200 status"},
          "503": {"description": "The search endpoint could not be reached"}
        }
      }
    },
    "/query/count": {
      "post": {
        "tags": ["query"],
        "summary": "Sum the reported totals of each window",
        "requestBody": {
          "required": true,
          "content": {"application/json": {"schema": {"$ref": "#/components/schemas/QueryInput"}}}
        },
        "responses": {
          "200": {
            "description": "Summed totals",
            "content": {"application/json": {"schema": {"$ref": "#/components/schemas/CountEnvelope"}}}
          },
          "401": {"description": "Missing or unknown API key"},
          "415": {"description": "Body is not application/json"}
        }
      }
    },
    "/meta/service": {
      "get": {
        "tags": ["meta"],
        "summary": "Service name, start time, uptime and mounted modules",
        "responses": {"200": {"description": "Service info"}}
      }
    },
    "/meta/version": {
      "get": {
        "tags": ["meta"],
        "summary": "Build information",
        "responses": {"200": {"description": "Build info"}}
      }
    },
    "/meta/health": {
      "get": {
        "tags": ["meta"],
        "summary": "Liveness",
        "responses": {"200": {"description": "Alive"}}
      }
    }
  },
  "components": {
    "schemas": {
      "QueryInput": {
        "type": "object",
        "required": ["query", "start", "end"],
        "properties": {
          "query": {"type": "string", "maxLength": 4096, "example": "level:error"},
          "start": {"type": "string", "description": "RFC3339, a UTC date or epoch milliseconds", "example": "2020-03-05"},
          "end": {"type": "string", "description": "RFC3339, a UTC date or epoch milliseconds", "example": "2020-03-06"},
          "window": {"type": "string", "description": "Go duration, defaults to 12h", "example": "12h"}
        }
      },
      "QueryEnvelope": {
        "type": "object",
        "properties": {
          "status_code": {"type": "integer"},
          "status": {"type": "string"},
          "request_id": {"type": "string"},
          "data": {
            "type": "object",
            "properties": {
              "count": {"type": "integer"},
              "documents": {"type": "array", "items": {"type": "object"}}
            }
          }
        }
      },
      "CountEnvelope": {
        "type": "object",
        "properties": {
          "status_code": {"type": "integer"},
          "status": {"type": "string"},
          "request_id": {"type": "string"},
          "data": {
            "type": "object",
            "properties": {"total": {"type": "integer"}}
          }
        }
      }
    }
  }
}`

// SwaggerInfo carries the values rendered into docTemplate
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Title:            "logzq API",
	Description:      "Exhaustive retrieval from the Logz.io search API",
	InfoInstanceName: "api",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
