package main

// General API documentation for swaggo.
//
// @title           catalogd API
// @version         1.0
// @description     HTTP API over the LLM model pricing catalog: filtered model
// @description     listings, provider statistics, and refresh control.
//
// @contact.name   catalogd maintainers
//
// @license.name   MIT
// @license.url    https://opensource.org/licenses/MIT
//
// @BasePath  /
//
// @schemes http
