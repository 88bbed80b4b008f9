package main

import "github.com/gonewx/paramslider/cmd/paramslider"

func main() {
	paramslider.Execute()
}
