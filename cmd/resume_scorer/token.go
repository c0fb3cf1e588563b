package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-scorer/internal/config"
	"github.com/jonathan/resume-scorer/internal/server"
)

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Issue a bearer token for the HTTP API",
	Long:  "Issue an HS256 bearer token signed with JWT_SECRET for calling a server started with the same secret.",
	RunE:  runToken,
}

var tokenSubject string

func init() {
	tokenCmd.Flags().StringVarP(&tokenSubject, "subject", "s", "", "Token subject, such as a client name (required)")
	rootCmd.AddCommand(tokenCmd)
}

func runToken(_ *cobra.Command, _ []string) error {
	if err := requireFlag("subject", tokenSubject); err != nil {
		return err
	}
	jwtCfg, err := config.NewJWTConfig()
	if err != nil {
		return err
	}
	token, err := server.NewJWTService(jwtCfg).GenerateToken(tokenSubject)
	if err != nil {
		return fmt.Errorf("failed to generate token: %w", err)
	}
	fmt.Println(token)
	return nil
}
