// Package handler implements the public JSON API on gin.
//
// # Routes
//
//	GET  /api/skills
//	GET  /api/projects
//	GET  /api/projects/:id
//	GET  /api/experience
//	GET  /api/education
//	POST /api/contact
//	GET  /api/export?format=json|yaml|xlsx
//	GET  /api/health
//
// Collections are returned as bare JSON arrays in storage order.
//
// # Errors
//
// Handlers report failures with c.Error and the ErrorHandler middleware
// writes the response. An *AppError becomes {message, field} with its own
// status; anything else is logged and answered with a generic 500.
package handler
