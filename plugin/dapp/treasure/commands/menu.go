// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package commands

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	ttypes "github.com/33cn/treasureboard/plugin/dapp/treasure/types"
	"github.com/spf13/cobra"
)

// menu actions
const (
	ActionExit = iota
	ActionCreate
	ActionList
	ActionPlay
	ActionReveal
)

const menuText = `
Available actions:
	1. Start a new game
	2. Get the list of games
	3. Play a game
	4. Reveal the solution of a game
	0. Exit
`

// MenuCmd interactive numbered menu
func MenuCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "menu",
		Short: "Interactive menu",
		Run:   menu,
	}
	return cmd
}

func menu(cmd *cobra.Command, args []string) {
	env, err := loadEnv(cmd)
	if err != nil {
		fmt.Fprintln(cmd.ErrOrStderr(), err)
		return
	}
	m := &menuLoop{
		env:    env,
		in:     bufio.NewReader(cmd.InOrStdin()),
		out:    cmd.OutOrStdout(),
		errOut: cmd.ErrOrStderr(),
	}
	m.run()
}

type menuLoop struct {
	env    *runEnv
	in     *bufio.Reader
	out    io.Writer
	errOut io.Writer
}

// ask prints the prompt and reads one line, false on end of input
func (m *menuLoop) ask(prompt string) (string, bool) {
	fmt.Fprint(m.out, prompt)
	line, err := m.in.ReadString('\n')
	if err != nil && (err != io.EOF || line == "") {
		return "", false
	}
	return strings.TrimSpace(line), true
}

func (m *menuLoop) run() {
	fmt.Fprintln(m.out, "Welcome to the treasure board")
	for {
		fmt.Fprint(m.out, menuText)
		token, ok := m.ask("Pick an action: ")
		if !ok {
			return
		}
		action, err := ttypes.ParseInt(token)
		if err != nil {
			action = -1
		}
		if action == ActionExit {
			return
		}
		if !m.dispatch(action) {
			return
		}
	}
}

// dispatch runs one action, false when input ended mid action
func (m *menuLoop) dispatch(action int) bool {
	switch action {
	case ActionList:
		listGames(m.env, m.out, m.errOut)
		return true
	case ActionCreate, ActionPlay, ActionReveal:
	default:
		fmt.Fprintln(m.out, "Sorry, I didn't quite catch that!")
		return true
	}

	env := m.env
	if env.cfg.Client.Account == "" {
		account, ok := m.ask("Enter your account id: ")
		if !ok {
			return false
		}
		cfg := *m.env.cfg
		cfg.Client.Account = account
		env = &runEnv{cfg: &cfg, policy: m.env.policy}
	}

	switch action {
	case ActionCreate:
		size, ok := m.ask("Choose a size for this game (Small, Medium, Big): ")
		if !ok {
			return false
		}
		bombs, ok := m.ask("Enter the bomb slots (numbers between 0-255 separated by space): ")
		if !ok {
			return false
		}
		salt, ok := m.ask("Enter a secret salt, keep it to reveal later: ")
		if !ok {
			return false
		}
		createGame(env, size, bombs, salt, m.out, m.errOut)
	case ActionPlay:
		id, ok := m.ask("Enter the id of the game: ")
		if !ok {
			return false
		}
		choice, ok := m.ask("Which slot do you wish to choose? ")
		if !ok {
			return false
		}
		playGame(env, id, choice, m.out, m.errOut)
	case ActionReveal:
		id, ok := m.ask("Enter the id of the game: ")
		if !ok {
			return false
		}
		solution, ok := m.ask("Enter the solution (the committed bytes separated by space): ")
		if !ok {
			return false
		}
		hash, ok := m.ask("Expected commitment in hex, empty to skip: ")
		if !ok {
			return false
		}
		revealGame(env, id, solution, hash, m.out, m.errOut)
	}
	return true
}
