package main

import "inkspot_backend/internal/app"

func main() {
	app.Run()
}
