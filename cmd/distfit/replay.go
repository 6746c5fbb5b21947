// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"github.com/spf13/cobra"

	"github.com/aclements/go-distfit/session"
)

func newReplayCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "replay session.json",
		Short: "Re-run a saved session",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := session.Load(args[0])
			if err != nil {
				return err
			}
			return fitAndReport(cmd, sess.Request())
		},
	}
	addOutputFlags(cmd)
	return cmd
}
