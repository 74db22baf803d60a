package main

import "github.com/hellopaaitech-arch/hellopaai-go/cmd/hpanelctl/cmd"

func main() {
	cmd.Execute()
}
