package main

import "tennis_backend/internal/app"

func main() {
	app.Run()
}
