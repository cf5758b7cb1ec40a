// Package docs holds the OpenAPI description served by the Swagger UI at
// /swagger/. Keep it in step with the @Router annotations in internal/api.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
	"schemes": {{ marshal .Schemes }},
	"swagger": "2.0",
	"info": {
		"description": "{{escape .Description}}",
		"title": "{{.Title}}",
		"contact": {},
		"version": "{{.Version}}"
	},
	"host": "{{.Host}}",
	"basePath": "{{.BasePath}}",
	"paths": {
		"/sessions": {
			"get": {
				"description": "Returns all quiz sessions, completed or not, newest first.",
				"produces": [
					"application/json"
				],
				"tags": [
					"Sessions"
				],
				"summary": "List quiz sessions",
				"parameters": [
					{
						"enum": [
							"LLD",
							"HLD",
							"DSA"
						],
						"type": "string",
						"description": "Category filter",
						"name": "category",
						"in": "query"
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"type": "array",
							"items": {
								"$ref": "#/definitions/api.SessionResponse"
							}
						}
					},
					"400": {
						"description": "Bad Request",
						"schema": {
							"type": "object",
							"additionalProperties": {
								"type": "string"
							}
						}
					}
				}
			}
		},
		"/sessions/recent": {
			"get": {
				"description": "Returns the most recent completed sessions, newest first.",
				"produces": [
					"application/json"
				],
				"tags": [
					"Sessions"
				],
				"summary": "Recent quiz sessions",
				"parameters": [
					{
						"type": "integer",
						"default": 5,
						"description": "Maximum sessions returned",
						"name": "limit",
						"in": "query"
					},
					{
						"enum": [
							"LLD",
							"HLD",
							"DSA"
						],
						"type": "string",
						"description": "Category filter",
						"name": "category",
						"in": "query"
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"type": "array",
							"items": {
								"$ref": "#/definitions/api.SessionResponse"
							}
						}
					},
					"400": {
						"description": "Bad Request",
						"schema": {
							"type": "object",
							"additionalProperties": {
								"type": "string"
							}
						}
					}
				}
			}
		},
		"/sessions/{sessionID}": {
			"get": {
				"description": "Returns a session with every graded question record.",
				"produces": [
					"application/json"
				],
				"tags": [
					"Sessions"
				],
				"summary": "Get a quiz session",
				"parameters": [
					{
						"type": "string",
						"description": "Session ID",
						"name": "sessionID",
						"in": "path",
						"required": true
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/api.SessionResponse"
						}
					},
					"404": {
						"description": "Not Found",
						"schema": {
							"type": "object",
							"additionalProperties": {
								"type": "string"
							}
						}
					},
					"500": {
						"description": "Internal Server Error",
						"schema": {
							"type": "object",
							"additionalProperties": {
								"type": "string"
							}
						}
					}
				}
			}
		},
		"/stats/overall": {
			"get": {
				"description": "Totals over every completed session, with best and worst category.",
				"produces": [
					"application/json"
				],
				"tags": [
					"Stats"
				],
				"summary": "Overall statistics",
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/api.OverallStatsResponse"
						}
					}
				}
			}
		},
		"/stats/categories": {
			"get": {
				"description": "One entry per category (LLD, HLD, DSA), including categories with no quizzes.",
				"produces": [
					"application/json"
				],
				"tags": [
					"Stats"
				],
				"summary": "Per-category statistics",
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"type": "array",
							"items": {
								"$ref": "#/definitions/api.CategoryStatsResponse"
							}
						}
					}
				}
			}
		},
		"/stats/weak-areas": {
			"get": {
				"description": "Topics averaging below 7 over at least two answers, weakest first.",
				"produces": [
					"application/json"
				],
				"tags": [
					"Stats"
				],
				"summary": "Weak areas",
				"parameters": [
					{
						"enum": [
							"LLD",
							"HLD",
							"DSA"
						],
						"type": "string",
						"description": "Category filter",
						"name": "category",
						"in": "query"
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"type": "array",
							"items": {
								"$ref": "#/definitions/api.WeakAreaResponse"
							}
						}
					},
					"400": {
						"description": "Bad Request",
						"schema": {
							"type": "object",
							"additionalProperties": {
								"type": "string"
							}
						}
					}
				}
			}
		},
		"/stats/mistakes": {
			"get": {
				"description": "Most frequently missed concepts across all completed sessions.",
				"produces": [
					"application/json"
				],
				"tags": [
					"Stats"
				],
				"summary": "Common mistakes",
				"parameters": [
					{
						"type": "integer",
						"default": 10,
						"description": "Maximum concepts returned",
						"name": "limit",
						"in": "query"
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"type": "array",
							"items": {
								"$ref": "#/definitions/api.MistakeResponse"
							}
						}
					},
					"400": {
						"description": "Bad Request",
						"schema": {
							"type": "object",
							"additionalProperties": {
								"type": "string"
							}
						}
					}
				}
			}
		},
		"/stats/trend": {
			"get": {
				"description": "Session averages of the latest completed sessions, oldest first, with their trend label.",
				"produces": [
					"application/json"
				],
				"tags": [
					"Stats"
				],
				"summary": "Improvement trend",
				"parameters": [
					{
						"enum": [
							"LLD",
							"HLD",
							"DSA"
						],
						"type": "string",
						"description": "Category filter",
						"name": "category",
						"in": "query"
					},
					{
						"type": "integer",
						"default": 10,
						"description": "Number of sessions",
						"name": "count",
						"in": "query"
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/api.TrendResponse"
						}
					},
					"400": {
						"description": "Bad Request",
						"schema": {
							"type": "object",
							"additionalProperties": {
								"type": "string"
							}
						}
					}
				}
			}
		},
		"/stats/best-score": {
			"get": {
				"description": "Highest session average in the category; best_score is null when there are no completed sessions.",
				"produces": [
					"application/json"
				],
				"tags": [
					"Stats"
				],
				"summary": "Best score in a category",
				"parameters": [
					{
						"enum": [
							"LLD",
							"HLD",
							"DSA"
						],
						"type": "string",
						"description": "Category",
						"name": "category",
						"in": "query",
						"required": true
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/api.BestScoreResponse"
						}
					},
					"400": {
						"description": "Bad Request",
						"schema": {
							"type": "object",
							"additionalProperties": {
								"type": "string"
							}
						}
					}
				}
			}
		},
		"/stats/topics": {
			"get": {
				"description": "Average, attempt count, last attempt and trend for every topic answered.",
				"produces": [
					"application/json"
				],
				"tags": [
					"Stats"
				],
				"summary": "Topic performance",
				"parameters": [
					{
						"enum": [
							"LLD",
							"HLD",
							"DSA"
						],
						"type": "string",
						"description": "Category filter",
						"name": "category",
						"in": "query"
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"type": "array",
							"items": {
								"$ref": "#/definitions/api.TopicPerformanceResponse"
							}
						}
					},
					"400": {
						"description": "Bad Request",
						"schema": {
							"type": "object",
							"additionalProperties": {
								"type": "string"
							}
						}
					}
				}
			}
		},
		"/stats/dashboard": {
			"get": {
				"description": "Overall, per-category, weak areas, common mistakes and improvement trend in one call. The category filter narrows weak areas and the trend only.",
				"produces": [
					"application/json"
				],
				"tags": [
					"Stats"
				],
				"summary": "Stats dashboard",
				"parameters": [
					{
						"enum": [
							"LLD",
							"HLD",
							"DSA"
						],
						"type": "string",
						"description": "Category filter",
						"name": "category",
						"in": "query"
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/api.DashboardResponse"
						}
					},
					"400": {
						"description": "Bad Request",
						"schema": {
							"type": "object",
							"additionalProperties": {
								"type": "string"
							}
						}
					}
				}
			}
		},
		"/export": {
			"get": {
				"description": "Download every session with its question records as a JSON document.",
				"produces": [
					"application/json"
				],
				"tags": [
					"Export"
				],
				"summary": "Export quiz history",
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/api.ExportData"
						}
					},
					"500": {
						"description": "Internal Server Error",
						"schema": {
							"type": "object",
							"additionalProperties": {
								"type": "string"
							}
						}
					}
				}
			}
		},
		"/import": {
			"post": {
				"description": "Create sessions from an export document. Sessions with an unknown category or a clashing ID are skipped.",
				"produces": [
					"application/json"
				],
				"tags": [
					"Export"
				],
				"summary": "Import quiz history",
				"consumes": [
					"application/json"
				],
				"parameters": [
					{
						"description": "Export document",
						"name": "body",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/api.ExportData"
						}
					}
				],
				"responses": {
					"201": {
						"description": "Created",
						"schema": {
							"$ref": "#/definitions/api.ImportResult"
						}
					},
					"400": {
						"description": "Bad Request",
						"schema": {
							"type": "object",
							"additionalProperties": {
								"type": "string"
							}
						}
					}
				}
			}
		}
	},
	"definitions": {
		"analytics.Trend": {
			"type": "string",
			"enum": [
				"improving",
				"declining",
				"stable",
				"insufficient_data"
			],
			"x-enum-varnames": [
				"TrendImproving",
				"TrendDeclining",
				"TrendStable",
				"TrendInsufficientData"
			]
		},
		"api.QuestionRecordResponse": {
			"type": "object",
			"properties": {
				"id": {
					"type": "string"
				},
				"question_text": {
					"type": "string"
				},
				"hint": {
					"type": "string"
				},
				"key_points": {
					"type": "array",
					"items": {
						"type": "string"
					}
				},
				"user_answer": {
					"type": "string"
				},
				"score": {
					"type": "integer"
				},
				"feedback": {
					"type": "string"
				},
				"covered_points": {
					"type": "array",
					"items": {
						"type": "string"
					}
				},
				"missed_points": {
					"type": "array",
					"items": {
						"type": "string"
					}
				},
				"answered_at": {
					"type": "string"
				},
				"topic": {
					"type": "string"
				}
			}
		},
		"api.SessionResponse": {
			"type": "object",
			"properties": {
				"id": {
					"type": "string"
				},
				"category": {
					"type": "string"
				},
				"category_name": {
					"type": "string"
				},
				"topic_title": {
					"type": "string"
				},
				"started_at": {
					"type": "string"
				},
				"completed_at": {
					"type": "string"
				},
				"is_completed": {
					"type": "boolean"
				},
				"total_questions": {
					"type": "integer"
				},
				"average_score": {
					"type": "number"
				},
				"score_percentage": {
					"type": "number"
				},
				"questions_answered": {
					"type": "integer"
				},
				"questions": {
					"type": "array",
					"items": {
						"$ref": "#/definitions/api.QuestionRecordResponse"
					}
				}
			}
		},
		"api.OverallStatsResponse": {
			"type": "object",
			"properties": {
				"total_quizzes": {
					"type": "integer"
				},
				"average_score": {
					"type": "number"
				},
				"formatted_average_score": {
					"type": "string"
				},
				"best_category": {
					"type": "string"
				},
				"worst_category": {
					"type": "string"
				},
				"total_questions": {
					"type": "integer"
				}
			}
		},
		"api.CategoryStatsResponse": {
			"type": "object",
			"properties": {
				"category": {
					"type": "string"
				},
				"category_name": {
					"type": "string"
				},
				"quiz_count": {
					"type": "integer"
				},
				"average_score": {
					"type": "number"
				},
				"best_score": {
					"type": "number"
				},
				"trend": {
					"$ref": "#/definitions/analytics.Trend"
				}
			}
		},
		"api.WeakAreaResponse": {
			"type": "object",
			"properties": {
				"topic": {
					"type": "string"
				},
				"category": {
					"type": "string"
				},
				"average_score": {
					"type": "number"
				},
				"quiz_count": {
					"type": "integer"
				},
				"missed_concepts": {
					"type": "array",
					"items": {
						"type": "string"
					}
				}
			}
		},
		"api.MistakeResponse": {
			"type": "object",
			"properties": {
				"concept": {
					"type": "string"
				},
				"frequency": {
					"type": "integer"
				}
			}
		},
		"api.TrendResponse": {
			"type": "object",
			"properties": {
				"scores": {
					"type": "array",
					"items": {
						"type": "number"
					}
				},
				"trend": {
					"$ref": "#/definitions/analytics.Trend"
				}
			}
		},
		"api.BestScoreResponse": {
			"type": "object",
			"properties": {
				"category": {
					"type": "string"
				},
				"best_score": {
					"type": "number"
				}
			}
		},
		"api.TopicPerformanceResponse": {
			"type": "object",
			"properties": {
				"topic": {
					"type": "string"
				},
				"average_score": {
					"type": "number"
				},
				"attempt_count": {
					"type": "integer"
				},
				"last_attempt": {
					"type": "string"
				},
				"trend": {
					"$ref": "#/definitions/analytics.Trend"
				}
			}
		},
		"api.DashboardResponse": {
			"type": "object",
			"properties": {
				"overall": {
					"$ref": "#/definitions/api.OverallStatsResponse"
				},
				"categories": {
					"type": "array",
					"items": {
						"$ref": "#/definitions/api.CategoryStatsResponse"
					}
				},
				"weak_areas": {
					"type": "array",
					"items": {
						"$ref": "#/definitions/api.WeakAreaResponse"
					}
				},
				"common_mistakes": {
					"type": "array",
					"items": {
						"$ref": "#/definitions/api.MistakeResponse"
					}
				},
				"improvement": {
					"$ref": "#/definitions/api.TrendResponse"
				}
			}
		},
		"api.ExportQuestion": {
			"type": "object",
			"properties": {
				"id": {
					"type": "string"
				},
				"question_text": {
					"type": "string"
				},
				"hint": {
					"type": "string"
				},
				"key_points": {
					"type": "array",
					"items": {
						"type": "string"
					}
				},
				"user_answer": {
					"type": "string"
				},
				"score": {
					"type": "integer"
				},
				"feedback": {
					"type": "string"
				},
				"covered_points": {
					"type": "array",
					"items": {
						"type": "string"
					}
				},
				"missed_points": {
					"type": "array",
					"items": {
						"type": "string"
					}
				},
				"answered_at": {
					"type": "string"
				},
				"topic": {
					"type": "string"
				}
			}
		},
		"api.ExportSession": {
			"type": "object",
			"properties": {
				"id": {
					"type": "string"
				},
				"category": {
					"type": "string"
				},
				"topic_title": {
					"type": "string"
				},
				"started_at": {
					"type": "string"
				},
				"completed_at": {
					"type": "string"
				},
				"total_questions": {
					"type": "integer"
				},
				"average_score": {
					"type": "number"
				},
				"questions": {
					"type": "array",
					"items": {
						"$ref": "#/definitions/api.ExportQuestion"
					}
				}
			}
		},
		"api.ExportData": {
			"type": "object",
			"properties": {
				"version": {
					"type": "string"
				},
				"exported_at": {
					"type": "string"
				},
				"sessions": {
					"type": "array",
					"items": {
						"$ref": "#/definitions/api.ExportSession"
					}
				}
			}
		},
		"api.ImportResult": {
			"type": "object",
			"properties": {
				"sessions_created": {
					"type": "integer"
				},
				"questions_created": {
					"type": "integer"
				},
				"sessions_skipped": {
					"type": "integer"
				}
			}
		}
	}
}`

// SwaggerInfo is registered with swag under the default instance name.
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "PrepFlow Analytics API",
	Description:      "Quiz history, statistics and weak-area detection for interview preparation.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
