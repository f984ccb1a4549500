// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cli

import (
	"fmt"
	"os"

	clog "github.com/33cn/treasureboard/common/log"
	"github.com/33cn/treasureboard/plugin/dapp/treasure/commands"
	"github.com/33cn/treasureboard/types"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

// NewRootCmd treasure client command tree
func NewRootCmd(title string) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   title + "-cli",
		Short: title + " client tools",
	}
	commands.AddGlobalFlags(rootCmd)
	rootCmd.AddCommand(
		commands.TreasureCmd(),
		commands.MenuCmd(),
	)
	return rootCmd
}

//Run :
func Run(title string) {
	// .env is optional
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		fmt.Fprintln(os.Stderr, err)
	}
	if title == "" {
		title = types.DefaultTitle
	}
	clog.SetLogLevel("error")
	if err := NewRootCmd(title).Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
