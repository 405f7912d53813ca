package main

// General API documentation for swaggo. Run `make swagger-gen` to generate docs.
//
// @title           hleval status API
// @version         1.0
// @description     Status and metrics for a running checkpoint evaluation batch.
//
// @contact.name   hleval maintainers
// @contact.url    https://github.com/your-org/hleval
//
// @license.name   MIT
// @license.url    https://opensource.org/licenses/MIT
//
// @BasePath  /
//
// @schemes http
