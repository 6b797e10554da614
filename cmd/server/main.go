package main

import "github.com/felipeatepam/backend-rest/cmd/server/cmd"

func main() {
	cmd.Execute()
}
