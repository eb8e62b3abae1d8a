package main

import "github.com/hanksha/pitch-booking-bot/cmd"

func main() {
	cmd.Execute()
}
