package main

import "github.com/longkey1/chatbot/cmd"

func main() {
	cmd.Execute()
}
