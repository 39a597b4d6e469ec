package main

import "discipline/cmd/dh/root"

func main() {
	root.Execute()
}
