// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package commands treasure board 命令行
package commands

import (
	"fmt"
	"io"

	"github.com/33cn/treasureboard/common"
	"github.com/33cn/treasureboard/plugin/dapp/treasure/commitment"
	ttypes "github.com/33cn/treasureboard/plugin/dapp/treasure/types"
	"github.com/spf13/cobra"
)

// TreasureCmd treasure board game management
func TreasureCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "game",
		Short: "treasure board game management",
		Args:  cobra.MinimumNArgs(1),
	}
	cmd.AddCommand(
		GameListCmd(),
		GameCreateCmd(),
		GamePlayCmd(),
		GameRevealCmd(),
		GameHashCmd(),
		GameVerifyCmd(),
	)
	return cmd
}

// GameListCmd list all boards
func GameListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List every board with its state",
		Run:   gameList,
	}
	return cmd
}

func gameList(cmd *cobra.Command, args []string) {
	env, err := loadEnv(cmd)
	if err != nil {
		fmt.Fprintln(cmd.ErrOrStderr(), err)
		return
	}
	listGames(env, cmd.OutOrStdout(), cmd.ErrOrStderr())
}

func listGames(env *runEnv, out, errOut io.Writer) {
	c, err := env.newClient()
	if err != nil {
		fmt.Fprintln(errOut, err)
		return
	}
	views, err := c.ListGames()
	if err != nil {
		fmt.Fprintln(errOut, err)
		return
	}
	printJSON(out, views)
}

// GameCreateCmd create a board
func GameCreateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a board and commit to its bombs",
		Run:   gameCreate,
	}
	addCommitFlags(cmd)
	return cmd
}

func addCommitFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("size", "s", "", "board size (Small, Medium, Big)")
	cmd.MarkFlagRequired("size")
	cmd.Flags().StringP("bombs", "b", "", "bomb slots separated by space, \"1 3 5\"")
	cmd.MarkFlagRequired("bombs")
	cmd.Flags().StringP("salt", "p", "", "secret salt appended to the bombs")
}

func gameCreate(cmd *cobra.Command, args []string) {
	env, err := loadEnv(cmd)
	if err != nil {
		fmt.Fprintln(cmd.ErrOrStderr(), err)
		return
	}
	size, _ := cmd.Flags().GetString("size")
	bombs, _ := cmd.Flags().GetString("bombs")
	salt, _ := cmd.Flags().GetString("salt")
	createGame(env, size, bombs, salt, cmd.OutOrStdout(), cmd.ErrOrStderr())
}

func createGame(env *runEnv, size, bombsInput, salt string, out, errOut io.Writer) {
	bombs, warnings, err := ttypes.ParseSlots(bombsInput, env.policy)
	if err != nil {
		fmt.Fprintln(errOut, err)
		return
	}
	printWarnings(errOut, warnings)
	c, err := env.newClient()
	if err != nil {
		fmt.Fprintln(errOut, err)
		return
	}
	res, err := c.CreateGame(env.session(), size, bombs, []byte(salt))
	if err != nil {
		fmt.Fprintln(errOut, err)
		return
	}
	printWarnings(errOut, res.Warnings)
	printJSON(out, &CreateResult{
		TxHash:     res.Outcome.TxHash,
		GameID:     res.Outcome.GameID,
		Stake:      res.Stake,
		Commitment: commitmentResult(res.Commitment),
		Warnings:   res.Warnings,
	})
}

// GamePlayCmd reserve a slot
func GamePlayCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "play",
		Short: "Reserve a slot on an open board",
		Run:   gamePlay,
	}
	cmd.Flags().StringP("gameID", "g", "", "game id")
	cmd.MarkFlagRequired("gameID")
	cmd.Flags().StringP("choice", "c", "", "slot index")
	cmd.MarkFlagRequired("choice")
	return cmd
}

func gamePlay(cmd *cobra.Command, args []string) {
	env, err := loadEnv(cmd)
	if err != nil {
		fmt.Fprintln(cmd.ErrOrStderr(), err)
		return
	}
	gameID, _ := cmd.Flags().GetString("gameID")
	choice, _ := cmd.Flags().GetString("choice")
	playGame(env, gameID, choice, cmd.OutOrStdout(), cmd.ErrOrStderr())
}

func playGame(env *runEnv, gameID, choice string, out, errOut io.Writer) {
	id, err := ttypes.ParseID(gameID)
	if err != nil {
		fmt.Fprintln(errOut, err)
		return
	}
	slot, err := ttypes.ParseInt(choice)
	if err != nil {
		fmt.Fprintln(errOut, err)
		return
	}
	c, err := env.newClient()
	if err != nil {
		fmt.Fprintln(errOut, err)
		return
	}
	outcome, err := c.ReserveSlot(env.session(), id, slot)
	if err != nil {
		fmt.Fprintln(errOut, err)
		return
	}
	printJSON(out, outcome)
}

// GameRevealCmd reveal the solution of a closed board
func GameRevealCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reveal",
		Short: "Reveal the solution of a closed board",
		Run:   gameReveal,
	}
	cmd.Flags().StringP("gameID", "g", "", "game id")
	cmd.MarkFlagRequired("gameID")
	cmd.Flags().StringP("solution", "x", "", "committed bytes separated by space")
	cmd.MarkFlagRequired("solution")
	cmd.Flags().String("hash", "", "expected commitment in hex, checked before sending")
	return cmd
}

func gameReveal(cmd *cobra.Command, args []string) {
	env, err := loadEnv(cmd)
	if err != nil {
		fmt.Fprintln(cmd.ErrOrStderr(), err)
		return
	}
	gameID, _ := cmd.Flags().GetString("gameID")
	solution, _ := cmd.Flags().GetString("solution")
	hash, _ := cmd.Flags().GetString("hash")
	revealGame(env, gameID, solution, hash, cmd.OutOrStdout(), cmd.ErrOrStderr())
}

func revealGame(env *runEnv, gameID, solutionInput, hash string, out, errOut io.Writer) {
	id, err := ttypes.ParseID(gameID)
	if err != nil {
		fmt.Fprintln(errOut, err)
		return
	}
	solution, warnings, err := ttypes.ParseSolution(solutionInput, env.policy)
	if err != nil {
		fmt.Fprintln(errOut, err)
		return
	}
	printWarnings(errOut, warnings)
	c, err := env.newClient()
	if err != nil {
		fmt.Fprintln(errOut, err)
		return
	}
	var expected []byte
	if hash != "" {
		if expected, err = commitment.DecodeDigest(c.Hasher(), hash); err != nil {
			fmt.Fprintln(errOut, err)
			return
		}
	}
	values := make([]int, len(solution))
	for i, b := range solution {
		values[i] = int(b)
	}
	res, err := c.RevealSolution(env.session(), id, values, expected)
	if err != nil {
		fmt.Fprintln(errOut, err)
		return
	}
	r := &RevealResult{
		TxHash:  res.Outcome.TxHash,
		Digest:  res.Digest,
		Results: res.Outcome.Results,
		Payouts: res.Outcome.Payouts,
	}
	if res.Verdict != nil {
		r.Matches = &res.Verdict.Valid
		if !res.Verdict.Valid {
			printWarnings(errOut, []string{"solution does not match the expected commitment"})
		}
	}
	printJSON(out, r)
}

// GameHashCmd build a commitment offline
func GameHashCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "hash",
		Short: "Build a board commitment without sending it",
		Run:   gameHash,
	}
	addCommitFlags(cmd)
	return cmd
}

func gameHash(cmd *cobra.Command, args []string) {
	env, err := loadEnv(cmd)
	if err != nil {
		fmt.Fprintln(cmd.ErrOrStderr(), err)
		return
	}
	label, _ := cmd.Flags().GetString("size")
	bombsInput, _ := cmd.Flags().GetString("bombs")
	salt, _ := cmd.Flags().GetString("salt")

	size, warnings, err := ttypes.SizeFromLabelWithPolicy(label, env.policy)
	if err != nil {
		fmt.Fprintln(cmd.ErrOrStderr(), err)
		return
	}
	bombs, more, err := ttypes.ParseSlots(bombsInput, env.policy)
	if err != nil {
		fmt.Fprintln(cmd.ErrOrStderr(), err)
		return
	}
	printWarnings(cmd.ErrOrStderr(), append(warnings, more...))
	h, err := env.hasher()
	if err != nil {
		fmt.Fprintln(cmd.ErrOrStderr(), err)
		return
	}
	c, err := commitment.BuildCommitmentWithPolicy(h, bombs, ttypes.SlotCount(size), []byte(salt), env.policy)
	if err != nil {
		fmt.Fprintln(cmd.ErrOrStderr(), err)
		return
	}
	printWarnings(cmd.ErrOrStderr(), c.Warnings)
	printJSON(cmd.OutOrStdout(), commitmentResult(c))
}

// GameVerifyCmd check a solution against a commitment offline
func GameVerifyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "verify",
		Short: "Check a solution against a commitment without sending it",
		Run:   gameVerify,
	}
	cmd.Flags().StringP("solution", "x", "", "committed bytes separated by space")
	cmd.MarkFlagRequired("solution")
	cmd.Flags().String("hash", "", "commitment in hex")
	cmd.MarkFlagRequired("hash")
	return cmd
}

func gameVerify(cmd *cobra.Command, args []string) {
	env, err := loadEnv(cmd)
	if err != nil {
		fmt.Fprintln(cmd.ErrOrStderr(), err)
		return
	}
	input, _ := cmd.Flags().GetString("solution")
	hash, _ := cmd.Flags().GetString("hash")

	solution, warnings, err := ttypes.ParseSolution(input, env.policy)
	if err != nil {
		fmt.Fprintln(cmd.ErrOrStderr(), err)
		return
	}
	printWarnings(cmd.ErrOrStderr(), warnings)
	h, err := env.hasher()
	if err != nil {
		fmt.Fprintln(cmd.ErrOrStderr(), err)
		return
	}
	verdict, err := commitment.VerifyRevealHex(h, solution, hash)
	if err != nil {
		fmt.Fprintln(cmd.ErrOrStderr(), err)
		return
	}
	printJSON(cmd.OutOrStdout(), &VerifyResult{Valid: verdict.Valid, Digest: common.Bytes2Hex(verdict.Digest)})
}
