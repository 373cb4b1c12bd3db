// Package main provides healthctl, a command line client for the health
// metrics models.
//
// Usage:
//
//	healthctl predict bmi --gender female --height 165 --weight 60
//	healthctl predict bodyfat --abdomen 92 --wrist 17.5
//	healthctl models --model-dir ./models
//
// See --help for all available options.
package main

func main() {
	Execute()
}
