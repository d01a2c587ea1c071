package main

import "github.com/screenlab/screener-api/cmd"

// @title           Screener API
// @version         1.0.0
// @description     API for video tagging and timeline annotation
// @contact.name    API Support
// @contact.url     https://github.com/screenlab/screener-api
// @license.name    MIT
// @license.url     https://opensource.org/licenses/MIT
// @host            localhost:22022
// @BasePath        /
// @schemes         http
func main() {
	cmd.Execute()
}
