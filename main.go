package main

import "github.com/datastax/sql-datatables/cmd"

func main() {
	cmd.Execute()
}
