// Package docs holds the swagger document served under /swagger.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/dashboard": {
            "get": {
                "tags": [
                    "dashboard"
                ],
                "summary": "Dashboard",
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "Today's overview",
                        "schema": {
                            "$ref": "#/definitions/ports.Dashboard"
                        }
                    }
                }
            }
        },
        "/insights": {
            "get": {
                "tags": [
                    "dashboard"
                ],
                "summary": "Insights",
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "Productivity summary",
                        "schema": {
                            "$ref": "#/definitions/ports.Insights"
                        }
                    }
                }
            }
        },
        "/calendar": {
            "get": {
                "tags": [
                    "dashboard"
                ],
                "summary": "Calendar month",
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "type": "integer",
                        "description": "Year",
                        "name": "year",
                        "in": "query"
                    },
                    {
                        "type": "integer",
                        "description": "Month, 1-12",
                        "name": "month",
                        "in": "query"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "42-day grid",
                        "schema": {
                            "$ref": "#/definitions/ports.CalendarMonth"
                        }
                    },
                    "400": {
                        "description": "Month out of range",
                        "schema": {
                            "$ref": "#/definitions/ports.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/tasks": {
            "get": {
                "tags": [
                    "tasks"
                ],
                "summary": "List tasks",
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "Tasks",
                        "schema": {
                            "type": "array",
                            "items": {
                                "$ref": "#/definitions/ports.TaskView"
                            }
                        }
                    }
                }
            },
            "post": {
                "tags": [
                    "tasks"
                ],
                "summary": "Create a task",
                "produces": [
                    "application/json"
                ],
                "consumes": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "in": "body",
                        "name": "request",
                        "description": "Task data",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/ports.CreateTaskRequest"
                        }
                    }
                ],
                "responses": {
                    "201": {
                        "description": "Created",
                        "schema": {
                            "$ref": "#/definitions/ports.TaskView"
                        }
                    },
                    "400": {
                        "description": "Invalid task",
                        "schema": {
                            "$ref": "#/definitions/ports.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/tasks/board": {
            "get": {
                "tags": [
                    "tasks"
                ],
                "summary": "Action board",
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "Tasks by column",
                        "schema": {
                            "$ref": "#/definitions/ports.Board"
                        }
                    }
                }
            }
        },
        "/tasks/{id}": {
            "put": {
                "tags": [
                    "tasks"
                ],
                "summary": "Update a task",
                "produces": [
                    "application/json"
                ],
                "consumes": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "type": "string",
                        "description": "Task ID",
                        "name": "id",
                        "in": "path",
                        "required": true
                    },
                    {
                        "in": "body",
                        "name": "request",
                        "description": "Task data",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/ports.UpdateTaskRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "Updated",
                        "schema": {
                            "$ref": "#/definitions/ports.TaskView"
                        }
                    },
                    "400": {
                        "description": "Invalid task",
                        "schema": {
                            "$ref": "#/definitions/ports.ErrorResponse"
                        }
                    },
                    "404": {
                        "description": "Not found",
                        "schema": {
                            "$ref": "#/definitions/ports.ErrorResponse"
                        }
                    }
                }
            },
            "delete": {
                "tags": [
                    "tasks"
                ],
                "summary": "Delete a task",
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "type": "string",
                        "description": "Task ID",
                        "name": "id",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {
                    "204": {
                        "description": "Deleted"
                    }
                }
            }
        },
        "/tasks/{id}/move": {
            "post": {
                "tags": [
                    "tasks"
                ],
                "summary": "Move a task",
                "produces": [
                    "application/json"
                ],
                "consumes": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "type": "string",
                        "description": "Task ID",
                        "name": "id",
                        "in": "path",
                        "required": true
                    },
                    {
                        "in": "body",
                        "name": "request",
                        "description": "Target column",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/ports.MoveTaskRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "Moved",
                        "schema": {
                            "$ref": "#/definitions/ports.TaskView"
                        }
                    },
                    "400": {
                        "description": "Invalid status",
                        "schema": {
                            "$ref": "#/definitions/ports.ErrorResponse"
                        }
                    },
                    "404": {
                        "description": "Not found",
                        "schema": {
                            "$ref": "#/definitions/ports.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/notes": {
            "get": {
                "tags": [
                    "notes"
                ],
                "summary": "List notes",
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "type": "string",
                        "description": "Case-insensitive search",
                        "name": "q",
                        "in": "query"
                    },
                    {
                        "type": "string",
                        "description": "Exact tag",
                        "name": "tag",
                        "in": "query"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "Notes",
                        "schema": {
                            "type": "array",
                            "items": {
                                "$ref": "#/definitions/entities.Note"
                            }
                        }
                    }
                }
            },
            "post": {
                "tags": [
                    "notes"
                ],
                "summary": "Create a note",
                "produces": [
                    "application/json"
                ],
                "consumes": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "in": "body",
                        "name": "request",
                        "description": "Note data, tags comma-separated",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/ports.SaveNoteRequest"
                        }
                    }
                ],
                "responses": {
                    "201": {
                        "description": "Created",
                        "schema": {
                            "$ref": "#/definitions/entities.Note"
                        }
                    },
                    "400": {
                        "description": "Invalid note",
                        "schema": {
                            "$ref": "#/definitions/ports.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/habits": {
            "get": {
                "tags": [
                    "habits"
                ],
                "summary": "List habits",
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "Habits",
                        "schema": {
                            "type": "array",
                            "items": {
                                "$ref": "#/definitions/entities.Habit"
                            }
                        }
                    }
                }
            },
            "post": {
                "tags": [
                    "habits"
                ],
                "summary": "Create a habit",
                "produces": [
                    "application/json"
                ],
                "consumes": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "in": "body",
                        "name": "request",
                        "description": "Habit data",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/ports.CreateHabitRequest"
                        }
                    }
                ],
                "responses": {
                    "201": {
                        "description": "Created",
                        "schema": {
                            "$ref": "#/definitions/entities.Habit"
                        }
                    },
                    "400": {
                        "description": "Invalid habit",
                        "schema": {
                            "$ref": "#/definitions/ports.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/habits/{id}/toggle": {
            "post": {
                "tags": [
                    "habits"
                ],
                "summary": "Toggle today's completion",
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "type": "string",
                        "description": "Habit ID",
                        "name": "id",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "Toggled",
                        "schema": {
                            "$ref": "#/definitions/entities.Habit"
                        }
                    },
                    "404": {
                        "description": "Not found",
                        "schema": {
                            "$ref": "#/definitions/ports.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/events": {
            "get": {
                "tags": [
                    "events"
                ],
                "summary": "List events",
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "type": "string",
                        "description": "Civil date",
                        "name": "date",
                        "in": "query"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "Events",
                        "schema": {
                            "type": "array",
                            "items": {
                                "$ref": "#/definitions/entities.Event"
                            }
                        }
                    }
                }
            },
            "post": {
                "tags": [
                    "events"
                ],
                "summary": "Create an event",
                "produces": [
                    "application/json"
                ],
                "consumes": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "in": "body",
                        "name": "request",
                        "description": "Event data",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/ports.CreateEventRequest"
                        }
                    }
                ],
                "responses": {
                    "201": {
                        "description": "Created",
                        "schema": {
                            "$ref": "#/definitions/entities.Event"
                        }
                    },
                    "400": {
                        "description": "Invalid event",
                        "schema": {
                            "$ref": "#/definitions/ports.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/lists": {
            "post": {
                "tags": [
                    "lists"
                ],
                "summary": "Create a checklist",
                "produces": [
                    "application/json"
                ],
                "consumes": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "in": "body",
                        "name": "request",
                        "description": "List data",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/ports.CreateListRequest"
                        }
                    }
                ],
                "responses": {
                    "201": {
                        "description": "Created",
                        "schema": {
                            "$ref": "#/definitions/entities.List"
                        }
                    }
                }
            }
        },
        "/lists/{id}/items": {
            "post": {
                "tags": [
                    "lists"
                ],
                "summary": "Add a checklist item",
                "produces": [
                    "application/json"
                ],
                "consumes": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "type": "string",
                        "description": "List ID",
                        "name": "id",
                        "in": "path",
                        "required": true
                    },
                    {
                        "in": "body",
                        "name": "request",
                        "description": "Item text",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/ports.AddListItemRequest"
                        }
                    }
                ],
                "responses": {
                    "201": {
                        "description": "Updated list",
                        "schema": {
                            "$ref": "#/definitions/entities.List"
                        }
                    },
                    "400": {
                        "description": "Empty text",
                        "schema": {
                            "$ref": "#/definitions/ports.ErrorResponse"
                        }
                    },
                    "404": {
                        "description": "Not found",
                        "schema": {
                            "$ref": "#/definitions/ports.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/lists/{id}/items/{itemId}/task": {
            "post": {
                "tags": [
                    "lists"
                ],
                "summary": "Convert item to task",
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "type": "string",
                        "description": "List ID",
                        "name": "id",
                        "in": "path",
                        "required": true
                    },
                    {
                        "type": "string",
                        "description": "Item ID",
                        "name": "itemId",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {
                    "201": {
                        "description": "Created task",
                        "schema": {
                            "$ref": "#/definitions/entities.Task"
                        }
                    },
                    "404": {
                        "description": "Not found",
                        "schema": {
                            "$ref": "#/definitions/ports.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/focus/complete": {
            "post": {
                "tags": [
                    "focus"
                ],
                "summary": "Complete a focus phase",
                "produces": [
                    "application/json"
                ],
                "consumes": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "in": "body",
                        "name": "request",
                        "description": "Finished phase",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/ports.CompletePhaseRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "Next phase",
                        "schema": {
                            "$ref": "#/definitions/ports.FocusPhase"
                        }
                    }
                }
            }
        },
        "/reload": {
            "post": {
                "tags": [
                    "collections"
                ],
                "summary": "Reload collections",
                "responses": {
                    "204": {
                        "description": "No Content"
                    },
                    "500": {
                        "description": "Internal Server Error",
                        "schema": {
                            "$ref": "#/definitions/ports.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/collections": {
            "get": {
                "tags": [
                    "collections"
                ],
                "summary": "List collections",
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "Schema registry",
                        "schema": {
                            "type": "array",
                            "items": {
                                "$ref": "#/definitions/schema.Collection"
                            }
                        }
                    }
                }
            }
        },
        "/collections/{name}": {
            "get": {
                "tags": [
                    "collections"
                ],
                "summary": "List records",
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "type": "string",
                        "description": "Collection name",
                        "name": "name",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "Records",
                        "schema": {
                            "type": "array",
                            "items": {
                                "type": "object"
                            }
                        }
                    },
                    "404": {
                        "description": "Unknown collection",
                        "schema": {
                            "$ref": "#/definitions/ports.ErrorResponse"
                        }
                    }
                }
            },
            "post": {
                "tags": [
                    "collections"
                ],
                "summary": "Add record",
                "produces": [
                    "application/json"
                ],
                "consumes": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "type": "string",
                        "description": "Collection name",
                        "name": "name",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {
                    "201": {
                        "description": "Added",
                        "schema": {
                            "type": "object"
                        }
                    },
                    "400": {
                        "description": "Invalid record",
                        "schema": {
                            "$ref": "#/definitions/ports.ErrorResponse"
                        }
                    },
                    "409": {
                        "description": "Duplicate id",
                        "schema": {
                            "$ref": "#/definitions/ports.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/collections/{name}/{id}": {
            "get": {
                "tags": [
                    "collections"
                ],
                "summary": "Get record",
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "type": "string",
                        "description": "Collection name",
                        "name": "name",
                        "in": "path",
                        "required": true
                    },
                    {
                        "type": "string",
                        "description": "Record ID",
                        "name": "id",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "Record",
                        "schema": {
                            "type": "object"
                        }
                    },
                    "404": {
                        "description": "Not found",
                        "schema": {
                            "$ref": "#/definitions/ports.ErrorResponse"
                        }
                    }
                }
            },
            "put": {
                "tags": [
                    "collections"
                ],
                "summary": "Update record",
                "produces": [
                    "application/json"
                ],
                "consumes": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "type": "string",
                        "description": "Collection name",
                        "name": "name",
                        "in": "path",
                        "required": true
                    },
                    {
                        "type": "string",
                        "description": "Record ID",
                        "name": "id",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "Stored",
                        "schema": {
                            "type": "object"
                        }
                    }
                }
            },
            "delete": {
                "tags": [
                    "collections"
                ],
                "summary": "Remove record",
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "type": "string",
                        "description": "Collection name",
                        "name": "name",
                        "in": "path",
                        "required": true
                    },
                    {
                        "type": "string",
                        "description": "Record ID",
                        "name": "id",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {
                    "204": {
                        "description": "Removed"
                    }
                }
            }
        },
        "/collections/{name}/index/{index}": {
            "get": {
                "tags": [
                    "collections"
                ],
                "summary": "Query by index",
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "type": "string",
                        "description": "Collection name",
                        "name": "name",
                        "in": "path",
                        "required": true
                    },
                    {
                        "type": "string",
                        "description": "Index name",
                        "name": "index",
                        "in": "path",
                        "required": true
                    },
                    {
                        "type": "string",
                        "description": "Value to match",
                        "name": "value",
                        "in": "query",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "Records",
                        "schema": {
                            "type": "array",
                            "items": {
                                "type": "object"
                            }
                        }
                    },
                    "404": {
                        "description": "Unknown index",
                        "schema": {
                            "$ref": "#/definitions/ports.ErrorResponse"
                        }
                    }
                }
            }
        }
    },
    "definitions": {
        "entities.Task": {
            "type": "object",
            "properties": {
                "id": {
                    "type": "string"
                },
                "title": {
                    "type": "string"
                },
                "category": {
                    "type": "string"
                },
                "priority": {
                    "type": "string",
                    "enum": [
                        "low",
                        "medium",
                        "high"
                    ]
                },
                "status": {
                    "type": "string",
                    "enum": [
                        "pending",
                        "in-progress",
                        "completed"
                    ]
                },
                "completed": {
                    "type": "boolean"
                },
                "dueDate": {
                    "type": "string"
                },
                "icon": {
                    "type": "string"
                },
                "createdAt": {
                    "type": "string"
                },
                "updatedAt": {
                    "type": "string"
                }
            }
        },
        "entities.Note": {
            "type": "object",
            "properties": {
                "id": {
                    "type": "string"
                },
                "title": {
                    "type": "string"
                },
                "content": {
                    "type": "string"
                },
                "tags": {
                    "type": "array",
                    "items": {
                        "type": "string"
                    }
                },
                "created": {
                    "type": "string"
                },
                "updated": {
                    "type": "string"
                }
            }
        },
        "entities.Habit": {
            "type": "object",
            "properties": {
                "id": {
                    "type": "string"
                },
                "name": {
                    "type": "string"
                },
                "type": {
                    "type": "string",
                    "enum": [
                        "good",
                        "bad"
                    ]
                },
                "frequency": {
                    "type": "string",
                    "enum": [
                        "daily",
                        "weekly",
                        "custom"
                    ]
                },
                "selectedDays": {
                    "type": "array",
                    "items": {
                        "type": "integer"
                    }
                },
                "streak": {
                    "type": "integer"
                },
                "history": {
                    "type": "array",
                    "items": {
                        "type": "string"
                    }
                },
                "created": {
                    "type": "string"
                }
            }
        },
        "entities.Event": {
            "type": "object",
            "properties": {
                "id": {
                    "type": "string"
                },
                "title": {
                    "type": "string"
                },
                "date": {
                    "type": "string"
                },
                "time": {
                    "type": "string"
                },
                "location": {
                    "type": "string"
                },
                "description": {
                    "type": "string"
                }
            }
        },
        "entities.ListItem": {
            "type": "object",
            "properties": {
                "id": {
                    "type": "string"
                },
                "text": {
                    "type": "string"
                },
                "completed": {
                    "type": "boolean"
                }
            }
        },
        "entities.List": {
            "type": "object",
            "properties": {
                "id": {
                    "type": "string"
                },
                "name": {
                    "type": "string"
                },
                "color": {
                    "type": "string"
                },
                "icon": {
                    "type": "string"
                },
                "items": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/entities.ListItem"
                    }
                },
                "createdAt": {
                    "type": "string"
                }
            }
        },
        "ports.CreateTaskRequest": {
            "type": "object",
            "properties": {
                "title": {
                    "type": "string"
                },
                "category": {
                    "type": "string"
                },
                "priority": {
                    "type": "string"
                },
                "status": {
                    "type": "string"
                },
                "dueDate": {
                    "type": "string"
                },
                "icon": {
                    "type": "string"
                }
            },
            "required": [
                "title"
            ]
        },
        "ports.UpdateTaskRequest": {
            "type": "object",
            "properties": {
                "title": {
                    "type": "string"
                },
                "category": {
                    "type": "string"
                },
                "priority": {
                    "type": "string"
                },
                "status": {
                    "type": "string"
                },
                "dueDate": {
                    "type": "string"
                },
                "icon": {
                    "type": "string"
                }
            },
            "required": [
                "title",
                "priority",
                "status"
            ]
        },
        "ports.MoveTaskRequest": {
            "type": "object",
            "properties": {
                "status": {
                    "type": "string"
                }
            },
            "required": [
                "status"
            ]
        },
        "ports.SaveNoteRequest": {
            "type": "object",
            "properties": {
                "title": {
                    "type": "string"
                },
                "content": {
                    "type": "string"
                },
                "tags": {
                    "type": "string"
                }
            },
            "required": [
                "title"
            ]
        },
        "ports.CreateHabitRequest": {
            "type": "object",
            "properties": {
                "name": {
                    "type": "string"
                },
                "type": {
                    "type": "string"
                },
                "frequency": {
                    "type": "string"
                },
                "selectedDays": {
                    "type": "array",
                    "items": {
                        "type": "integer"
                    }
                }
            },
            "required": [
                "name"
            ]
        },
        "ports.CreateEventRequest": {
            "type": "object",
            "properties": {
                "title": {
                    "type": "string"
                },
                "date": {
                    "type": "string"
                },
                "time": {
                    "type": "string"
                },
                "location": {
                    "type": "string"
                },
                "description": {
                    "type": "string"
                }
            },
            "required": [
                "title",
                "date"
            ]
        },
        "ports.CreateListRequest": {
            "type": "object",
            "properties": {
                "name": {
                    "type": "string"
                },
                "color": {
                    "type": "string"
                },
                "icon": {
                    "type": "string"
                }
            },
            "required": [
                "name"
            ]
        },
        "ports.AddListItemRequest": {
            "type": "object",
            "properties": {
                "text": {
                    "type": "string"
                }
            },
            "required": [
                "text"
            ]
        },
        "ports.CompletePhaseRequest": {
            "type": "object",
            "properties": {
                "mode": {
                    "type": "string",
                    "enum": [
                        "work",
                        "break",
                        "longBreak"
                    ]
                },
                "completed": {
                    "type": "integer"
                }
            },
            "required": [
                "mode"
            ]
        },
        "ports.FocusPhase": {
            "type": "object",
            "properties": {
                "mode": {
                    "type": "string"
                },
                "duration": {
                    "type": "integer"
                },
                "completed": {
                    "type": "integer"
                }
            }
        },
        "ports.Board": {
            "type": "object",
            "properties": {
                "pending": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/ports.TaskView"
                    }
                },
                "in-progress": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/ports.TaskView"
                    }
                },
                "completed": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/ports.TaskView"
                    }
                }
            }
        },
        "ports.TaskView": {
            "type": "object",
            "properties": {
                "id": {
                    "type": "string"
                },
                "title": {
                    "type": "string"
                },
                "category": {
                    "type": "string"
                },
                "priority": {
                    "type": "string",
                    "enum": [
                        "low",
                        "medium",
                        "high"
                    ]
                },
                "status": {
                    "type": "string",
                    "enum": [
                        "pending",
                        "in-progress",
                        "completed"
                    ]
                },
                "completed": {
                    "type": "boolean"
                },
                "dueDate": {
                    "type": "string"
                },
                "icon": {
                    "type": "string"
                },
                "createdAt": {
                    "type": "string"
                },
                "updatedAt": {
                    "type": "string"
                },
                "overdue": {
                    "type": "boolean"
                },
                "dueLabel": {
                    "type": "string"
                }
            }
        },
        "ports.DashboardStats": {
            "type": "object",
            "properties": {
                "completed": {
                    "type": "integer"
                },
                "total": {
                    "type": "integer"
                },
                "streak": {
                    "type": "integer"
                }
            }
        },
        "ports.Dashboard": {
            "type": "object",
            "properties": {
                "greeting": {
                    "type": "string"
                },
                "todayTasks": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/entities.Task"
                    }
                },
                "habits": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/entities.Habit"
                    }
                },
                "todayEvents": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/entities.Event"
                    }
                },
                "stats": {
                    "$ref": "#/definitions/ports.DashboardStats"
                }
            }
        },
        "ports.DayCount": {
            "type": "object",
            "properties": {
                "day": {
                    "type": "string"
                },
                "count": {
                    "type": "integer"
                }
            }
        },
        "ports.Insights": {
            "type": "object",
            "properties": {
                "completedTasks": {
                    "type": "integer"
                },
                "totalTasks": {
                    "type": "integer"
                },
                "completionRate": {
                    "type": "number"
                },
                "avgStreak": {
                    "type": "number"
                },
                "priorities": {
                    "type": "object",
                    "properties": {
                        "high": {
                            "type": "integer"
                        },
                        "medium": {
                            "type": "integer"
                        },
                        "low": {
                            "type": "integer"
                        }
                    }
                },
                "last7Days": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/ports.DayCount"
                    }
                },
                "totalFocusTime": {
                    "type": "integer"
                }
            }
        },
        "ports.CalendarItem": {
            "type": "object",
            "properties": {
                "type": {
                    "type": "string"
                },
                "id": {
                    "type": "string"
                },
                "title": {
                    "type": "string"
                },
                "time": {
                    "type": "string"
                }
            }
        },
        "ports.CalendarDay": {
            "type": "object",
            "properties": {
                "date": {
                    "type": "string"
                },
                "isCurrentMonth": {
                    "type": "boolean"
                },
                "isToday": {
                    "type": "boolean"
                },
                "items": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/ports.CalendarItem"
                    }
                }
            }
        },
        "ports.CalendarMonth": {
            "type": "object",
            "properties": {
                "year": {
                    "type": "integer"
                },
                "month": {
                    "type": "integer"
                },
                "title": {
                    "type": "string"
                },
                "days": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/ports.CalendarDay"
                    }
                }
            }
        },
        "ports.ErrorResponse": {
            "type": "object",
            "properties": {
                "message": {
                    "type": "string"
                },
                "details": {
                    "type": "string"
                }
            }
        },
        "schema.Index": {
            "type": "object",
            "properties": {
                "name": {
                    "type": "string"
                },
                "field": {
                    "type": "string"
                },
                "multiEntry": {
                    "type": "boolean"
                }
            }
        },
        "schema.Collection": {
            "type": "object",
            "properties": {
                "name": {
                    "type": "string"
                },
                "keyPath": {
                    "type": "string"
                },
                "indexes": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/schema.Index"
                    }
                }
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/api/v1",
	Schemes:          []string{"http"},
	Title:            "LifeFlow API",
	Description:      "Local API over the LifeFlow personal productivity store",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
