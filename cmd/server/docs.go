package main

//go:generate swag init -g cmd/server/main.go -o docs

// @title           Coindash API
// @version         0.1.0
// @description     Cached cryptocurrency market data: rankings, coin details, and global metrics.
// @host            localhost:8080
// @BasePath        /
// @schemes         http
