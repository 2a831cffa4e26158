package main

import "wedding-site-backend/cmd"

func main() {
	cmd.Run()
}
