package main

import "brushwork_backend/internal/app"

func main() {
	app.Run()
}
