package main

// General API documentation for swaggo. Run `make swagger-gen` to generate docs.
//
// @title           previewd API
// @version         1.0
// @description     HTTP API for viewport-gated 3D product preview rendering and snapshot caching.
//
// @contact.name   previewd maintainers
// @contact.url    https://github.com/your-org/previewd
//
// @license.name   MIT
// @license.url    https://opensource.org/licenses/MIT
//
// @BasePath  /
//
// @schemes http
