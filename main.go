package main

import "github.com/jayPark21/Pomodoro-timer/cmd"

func main() {
	cmd.Execute()
}
