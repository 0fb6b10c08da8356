package main

import "github.com/vibast-solutions/ms-go-atobarai/cmd"

func main() {
	cmd.Execute()
}
