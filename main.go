package main

import "github.com/codemend/codemend/cmd/codemend"

func main() { codemend.Execute() }
