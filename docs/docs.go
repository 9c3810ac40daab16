// Package docs holds the OpenAPI document served at /swagger/.
// Regenerate with: swag init -g cmd/server/main.go
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
		"/register": {
			"post": {
				"tags": [
					"auth"
				],
				"summary": "Register a new user",
				"produces": [
					"application/json"
				],
				"parameters": [
					{
						"description": "User registration details",
						"name": "body",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/handler.registerRequest"
						}
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/handler.authResponse"
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
					},
					"409": {
						"description": "Conflict",
						"schema": {
							"type": "object",
							"additionalProperties": {
								"type": "string"
							}
						}
					},
					"429": {
						"description": "Too Many Requests",
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
				},
				"consumes": [
					"application/json"
				]
			}
		},
		"/login": {
			"post": {
				"tags": [
					"auth"
				],
				"summary": "Login",
				"produces": [
					"application/json"
				],
				"parameters": [
					{
						"description": "Login credentials",
						"name": "body",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/handler.loginRequest"
						}
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/handler.authResponse"
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
					},
					"401": {
						"description": "Unauthorized",
						"schema": {
							"type": "object",
							"additionalProperties": {
								"type": "string"
							}
						}
					},
					"429": {
						"description": "Too Many Requests",
						"schema": {
							"type": "object",
							"additionalProperties": {
								"type": "string"
							}
						}
					}
				},
				"consumes": [
					"application/json"
				]
			}
		},
		"/profile": {
			"get": {
				"tags": [
					"profile"
				],
				"summary": "Own profile",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/handler.ownProfileResponse"
						}
					},
					"401": {
						"description": "Unauthorized",
						"schema": {
							"type": "object",
							"additionalProperties": {
								"type": "string"
							}
						}
					}
				},
				"security": [
					{
						"BearerAuth": []
					}
				]
			}
		},
		"/profile/profile-picture": {
			"put": {
				"tags": [
					"profile"
				],
				"summary": "Set profile picture",
				"produces": [
					"application/json"
				],
				"parameters": [
					{
						"description": "Picture reference",
						"name": "body",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/handler.profilePictureRequest"
						}
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/handler.messageResponse"
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
					},
					"401": {
						"description": "Unauthorized",
						"schema": {
							"type": "object",
							"additionalProperties": {
								"type": "string"
							}
						}
					}
				},
				"consumes": [
					"application/json"
				],
				"security": [
					{
						"BearerAuth": []
					}
				]
			},
			"delete": {
				"tags": [
					"profile"
				],
				"summary": "Remove profile picture",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/handler.messageResponse"
						}
					},
					"401": {
						"description": "Unauthorized",
						"schema": {
							"type": "object",
							"additionalProperties": {
								"type": "string"
							}
						}
					}
				},
				"security": [
					{
						"BearerAuth": []
					}
				]
			}
		},
		"/profile/{username}": {
			"get": {
				"tags": [
					"profile"
				],
				"summary": "Public profile",
				"produces": [
					"application/json"
				],
				"parameters": [
					{
						"type": "string",
						"description": "Username",
						"name": "username",
						"in": "path",
						"required": true
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/handler.profileResponse"
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
					}
				}
			}
		},
		"/profile/{username}/profile-data": {
			"put": {
				"tags": [
					"profile"
				],
				"summary": "Update profile data",
				"produces": [
					"application/json"
				],
				"parameters": [
					{
						"description": "Profile fields",
						"name": "body",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/handler.updateProfileRequest"
						}
					},
					{
						"type": "string",
						"description": "Own username",
						"name": "username",
						"in": "path",
						"required": true
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/handler.authResponse"
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
					},
					"401": {
						"description": "Unauthorized",
						"schema": {
							"type": "object",
							"additionalProperties": {
								"type": "string"
							}
						}
					},
					"403": {
						"description": "Forbidden",
						"schema": {
							"type": "object",
							"additionalProperties": {
								"type": "string"
							}
						}
					}
				},
				"consumes": [
					"application/json"
				],
				"security": [
					{
						"BearerAuth": []
					}
				]
			}
		},
		"/profile/{username}/password-change": {
			"put": {
				"tags": [
					"profile"
				],
				"summary": "Change password",
				"produces": [
					"application/json"
				],
				"parameters": [
					{
						"description": "Current and new password",
						"name": "body",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/handler.changePasswordRequest"
						}
					},
					{
						"type": "string",
						"description": "Own username",
						"name": "username",
						"in": "path",
						"required": true
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/handler.messageResponse"
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
					},
					"401": {
						"description": "Unauthorized",
						"schema": {
							"type": "object",
							"additionalProperties": {
								"type": "string"
							}
						}
					},
					"403": {
						"description": "Forbidden",
						"schema": {
							"type": "object",
							"additionalProperties": {
								"type": "string"
							}
						}
					}
				},
				"consumes": [
					"application/json"
				],
				"security": [
					{
						"BearerAuth": []
					}
				]
			}
		},
		"/profile/{username}/posts": {
			"post": {
				"tags": [
					"posts"
				],
				"summary": "Create post",
				"produces": [
					"application/json"
				],
				"parameters": [
					{
						"description": "Image reference and caption",
						"name": "body",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/handler.createPostRequest"
						}
					},
					{
						"type": "string",
						"description": "Own username",
						"name": "username",
						"in": "path",
						"required": true
					}
				],
				"responses": {
					"201": {
						"description": "Created",
						"schema": {
							"$ref": "#/definitions/domain.Post"
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
					},
					"401": {
						"description": "Unauthorized",
						"schema": {
							"type": "object",
							"additionalProperties": {
								"type": "string"
							}
						}
					},
					"403": {
						"description": "Forbidden",
						"schema": {
							"type": "object",
							"additionalProperties": {
								"type": "string"
							}
						}
					}
				},
				"consumes": [
					"application/json"
				],
				"security": [
					{
						"BearerAuth": []
					}
				]
			}
		},
		"/profile/{username}/posts/{postId}": {
			"get": {
				"tags": [
					"posts"
				],
				"summary": "Get post on a profile",
				"produces": [
					"application/json"
				],
				"parameters": [
					{
						"type": "string",
						"description": "Author username",
						"name": "username",
						"in": "path",
						"required": true
					},
					{
						"type": "string",
						"description": "Post id",
						"name": "postId",
						"in": "path",
						"required": true
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/handler.postResponse"
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
					}
				}
			},
			"delete": {
				"tags": [
					"posts"
				],
				"summary": "Delete post",
				"produces": [
					"application/json"
				],
				"parameters": [
					{
						"type": "string",
						"description": "Own username",
						"name": "username",
						"in": "path",
						"required": true
					},
					{
						"type": "string",
						"description": "Post id",
						"name": "postId",
						"in": "path",
						"required": true
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/handler.messageResponse"
						}
					},
					"401": {
						"description": "Unauthorized",
						"schema": {
							"type": "object",
							"additionalProperties": {
								"type": "string"
							}
						}
					},
					"403": {
						"description": "Forbidden",
						"schema": {
							"type": "object",
							"additionalProperties": {
								"type": "string"
							}
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
					}
				},
				"security": [
					{
						"BearerAuth": []
					}
				]
			}
		},
		"/profile/{username}/posts/{postId}/comments": {
			"post": {
				"tags": [
					"comments"
				],
				"summary": "Add comment",
				"produces": [
					"application/json"
				],
				"parameters": [
					{
						"description": "Comment",
						"name": "body",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/handler.commentRequest"
						}
					},
					{
						"type": "string",
						"description": "Post author",
						"name": "username",
						"in": "path",
						"required": true
					},
					{
						"type": "string",
						"description": "Post id",
						"name": "postId",
						"in": "path",
						"required": true
					}
				],
				"responses": {
					"201": {
						"description": "Created",
						"schema": {
							"$ref": "#/definitions/domain.Comment"
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
					},
					"401": {
						"description": "Unauthorized",
						"schema": {
							"type": "object",
							"additionalProperties": {
								"type": "string"
							}
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
					}
				},
				"consumes": [
					"application/json"
				],
				"security": [
					{
						"BearerAuth": []
					}
				]
			}
		},
		"/profile/{username}/posts/{postId}/comments/{commentId}": {
			"put": {
				"tags": [
					"comments"
				],
				"summary": "Edit comment",
				"produces": [
					"application/json"
				],
				"parameters": [
					{
						"description": "New content",
						"name": "body",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/handler.commentRequest"
						}
					},
					{
						"type": "string",
						"description": "Post author",
						"name": "username",
						"in": "path",
						"required": true
					},
					{
						"type": "string",
						"description": "Post id",
						"name": "postId",
						"in": "path",
						"required": true
					},
					{
						"type": "string",
						"description": "Comment id",
						"name": "commentId",
						"in": "path",
						"required": true
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/handler.messageResponse"
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
					},
					"401": {
						"description": "Unauthorized",
						"schema": {
							"type": "object",
							"additionalProperties": {
								"type": "string"
							}
						}
					},
					"403": {
						"description": "Forbidden",
						"schema": {
							"type": "object",
							"additionalProperties": {
								"type": "string"
							}
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
					}
				},
				"consumes": [
					"application/json"
				],
				"security": [
					{
						"BearerAuth": []
					}
				]
			},
			"delete": {
				"tags": [
					"comments"
				],
				"summary": "Delete comment",
				"produces": [
					"application/json"
				],
				"parameters": [
					{
						"type": "string",
						"description": "Post author",
						"name": "username",
						"in": "path",
						"required": true
					},
					{
						"type": "string",
						"description": "Post id",
						"name": "postId",
						"in": "path",
						"required": true
					},
					{
						"type": "string",
						"description": "Comment id",
						"name": "commentId",
						"in": "path",
						"required": true
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/handler.messageResponse"
						}
					},
					"401": {
						"description": "Unauthorized",
						"schema": {
							"type": "object",
							"additionalProperties": {
								"type": "string"
							}
						}
					},
					"403": {
						"description": "Forbidden",
						"schema": {
							"type": "object",
							"additionalProperties": {
								"type": "string"
							}
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
					}
				},
				"security": [
					{
						"BearerAuth": []
					}
				]
			}
		},
		"/posts/{postId}": {
			"get": {
				"tags": [
					"posts"
				],
				"summary": "Get post",
				"produces": [
					"application/json"
				],
				"parameters": [
					{
						"type": "string",
						"description": "Post id",
						"name": "postId",
						"in": "path",
						"required": true
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/handler.postResponse"
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
					}
				}
			}
		},
		"/posts/{postId}/like": {
			"post": {
				"tags": [
					"posts"
				],
				"summary": "Like post",
				"produces": [
					"application/json"
				],
				"parameters": [
					{
						"type": "string",
						"description": "Post id",
						"name": "postId",
						"in": "path",
						"required": true
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/handler.messageResponse"
						}
					},
					"401": {
						"description": "Unauthorized",
						"schema": {
							"type": "object",
							"additionalProperties": {
								"type": "string"
							}
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
					"409": {
						"description": "Conflict",
						"schema": {
							"type": "object",
							"additionalProperties": {
								"type": "string"
							}
						}
					}
				},
				"security": [
					{
						"BearerAuth": []
					}
				]
			},
			"delete": {
				"tags": [
					"posts"
				],
				"summary": "Unlike post",
				"produces": [
					"application/json"
				],
				"parameters": [
					{
						"type": "string",
						"description": "Post id",
						"name": "postId",
						"in": "path",
						"required": true
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/handler.messageResponse"
						}
					},
					"401": {
						"description": "Unauthorized",
						"schema": {
							"type": "object",
							"additionalProperties": {
								"type": "string"
							}
						}
					}
				},
				"security": [
					{
						"BearerAuth": []
					}
				]
			}
		},
		"/users/search": {
			"get": {
				"tags": [
					"users"
				],
				"summary": "Search users",
				"produces": [
					"application/json"
				],
				"parameters": [
					{
						"type": "string",
						"description": "Username fragment",
						"name": "q",
						"in": "query",
						"required": true
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"type": "array",
							"items": {
								"$ref": "#/definitions/handler.userSummaryResponse"
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
		"/users/{followeeId}/follow": {
			"post": {
				"tags": [
					"users"
				],
				"summary": "Follow user",
				"produces": [
					"application/json"
				],
				"parameters": [
					{
						"type": "string",
						"description": "User id to follow",
						"name": "followeeId",
						"in": "path",
						"required": true
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/handler.messageResponse"
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
					},
					"401": {
						"description": "Unauthorized",
						"schema": {
							"type": "object",
							"additionalProperties": {
								"type": "string"
							}
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
					"409": {
						"description": "Conflict",
						"schema": {
							"type": "object",
							"additionalProperties": {
								"type": "string"
							}
						}
					}
				},
				"security": [
					{
						"BearerAuth": []
					}
				]
			}
		},
		"/users/{followeeId}/unfollow": {
			"delete": {
				"tags": [
					"users"
				],
				"summary": "Unfollow user",
				"produces": [
					"application/json"
				],
				"parameters": [
					{
						"type": "string",
						"description": "User id to unfollow",
						"name": "followeeId",
						"in": "path",
						"required": true
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/handler.messageResponse"
						}
					},
					"401": {
						"description": "Unauthorized",
						"schema": {
							"type": "object",
							"additionalProperties": {
								"type": "string"
							}
						}
					}
				},
				"security": [
					{
						"BearerAuth": []
					}
				]
			}
		}
	},
	"definitions": {
		"domain.Post": {
			"type": "object",
			"properties": {
				"postId": {
					"type": "string"
				},
				"userId": {
					"type": "string"
				},
				"imagePath": {
					"type": "string"
				},
				"caption": {
					"type": "string"
				},
				"postDate": {
					"type": "string"
				}
			}
		},
		"domain.Comment": {
			"type": "object",
			"properties": {
				"commentId": {
					"type": "string"
				},
				"postId": {
					"type": "string"
				},
				"userId": {
					"type": "string"
				},
				"content": {
					"type": "string"
				},
				"commentDate": {
					"type": "string"
				}
			}
		},
		"handler.authResponse": {
			"type": "object",
			"properties": {
				"token": {
					"type": "string"
				},
				"userId": {
					"type": "string"
				},
				"username": {
					"type": "string"
				}
			}
		},
		"handler.messageResponse": {
			"type": "object",
			"properties": {
				"message": {
					"type": "string"
				}
			}
		},
		"handler.registerRequest": {
			"type": "object",
			"properties": {
				"username": {
					"type": "string"
				},
				"email": {
					"type": "string"
				},
				"password": {
					"type": "string"
				},
				"phoneNumber": {
					"type": "string"
				}
			},
			"required": [
				"username",
				"email",
				"password"
			]
		},
		"handler.loginRequest": {
			"type": "object",
			"properties": {
				"email": {
					"type": "string"
				},
				"password": {
					"type": "string"
				}
			},
			"required": [
				"email",
				"password"
			]
		},
		"handler.changePasswordRequest": {
			"type": "object",
			"properties": {
				"currentPassword": {
					"type": "string"
				},
				"newPassword": {
					"type": "string"
				}
			},
			"required": [
				"currentPassword",
				"newPassword"
			]
		},
		"handler.updateProfileRequest": {
			"type": "object",
			"properties": {
				"username": {
					"type": "string"
				},
				"email": {
					"type": "string"
				},
				"phoneNumber": {
					"type": "string"
				},
				"bio": {
					"type": "string"
				},
				"dob": {
					"type": "string"
				}
			},
			"required": [
				"username",
				"email"
			]
		},
		"handler.profilePictureRequest": {
			"type": "object",
			"properties": {
				"profilePic": {
					"type": "string"
				}
			},
			"required": [
				"profilePic"
			]
		},
		"handler.createPostRequest": {
			"type": "object",
			"properties": {
				"imagePath": {
					"type": "string"
				},
				"caption": {
					"type": "string"
				}
			},
			"required": [
				"imagePath"
			]
		},
		"handler.commentRequest": {
			"type": "object",
			"properties": {
				"content": {
					"type": "string"
				}
			},
			"required": [
				"content"
			]
		},
		"handler.profileResponse": {
			"type": "object",
			"properties": {
				"userId": {
					"type": "string"
				},
				"username": {
					"type": "string"
				},
				"email": {
					"type": "string"
				},
				"profilePic": {
					"type": "string"
				},
				"bio": {
					"type": "string"
				},
				"followersCount": {
					"type": "integer"
				},
				"followingCount": {
					"type": "integer"
				},
				"postsCount": {
					"type": "integer"
				},
				"isFollowing": {
					"type": "boolean"
				},
				"posts": {
					"type": "array",
					"items": {
						"$ref": "#/definitions/domain.Post"
					}
				}
			}
		},
		"handler.ownProfileResponse": {
			"type": "object",
			"properties": {
				"userId": {
					"type": "string"
				},
				"username": {
					"type": "string"
				},
				"email": {
					"type": "string"
				},
				"phoneNumber": {
					"type": "string"
				},
				"profilePic": {
					"type": "string"
				},
				"bio": {
					"type": "string"
				},
				"dob": {
					"type": "string"
				},
				"followersCount": {
					"type": "integer"
				},
				"followingCount": {
					"type": "integer"
				},
				"postsCount": {
					"type": "integer"
				},
				"isFollowing": {
					"type": "boolean"
				},
				"posts": {
					"type": "array",
					"items": {
						"$ref": "#/definitions/domain.Post"
					}
				}
			}
		},
		"handler.commentResponse": {
			"type": "object",
			"properties": {
				"commentId": {
					"type": "string"
				},
				"postId": {
					"type": "string"
				},
				"userId": {
					"type": "string"
				},
				"content": {
					"type": "string"
				},
				"commentDate": {
					"type": "string"
				},
				"username": {
					"type": "string"
				}
			}
		},
		"handler.postResponse": {
			"type": "object",
			"properties": {
				"postId": {
					"type": "string"
				},
				"userId": {
					"type": "string"
				},
				"imagePath": {
					"type": "string"
				},
				"caption": {
					"type": "string"
				},
				"postDate": {
					"type": "string"
				},
				"username": {
					"type": "string"
				},
				"profilePic": {
					"type": "string"
				},
				"likes": {
					"type": "integer"
				},
				"isLiked": {
					"type": "boolean"
				},
				"comments": {
					"type": "array",
					"items": {
						"$ref": "#/definitions/handler.commentResponse"
					}
				}
			}
		},
		"handler.userSummaryResponse": {
			"type": "object",
			"properties": {
				"userId": {
					"type": "string"
				},
				"username": {
					"type": "string"
				},
				"profilePic": {
					"type": "string"
				},
				"isFollowing": {
					"type": "boolean"
				}
			}
		}
	},
	"securityDefinitions": {
		"BearerAuth": {
			"type": "apiKey",
			"name": "Authorization",
			"in": "header"
		}
	}
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:		  "1.0",
	Host:			 "",
	BasePath:		 "/",
	Schemes:		  []string{},
	Title:			"Pictobox API",
	Description:	  "Photo sharing backend: accounts, profiles, posts, comments, follows and likes.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:		"{{",
	RightDelim:	   "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
