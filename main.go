package main

import "github.com/jsphweid/grooveset/cmd"

func main() {
	cmd.Execute()
}
