package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"prodstore/internal/api"
	"prodstore/internal/config"
)

func newLoginCmd(cfg *config.Config, jsonOutput *bool) *cobra.Command {
	var username, password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in as a staff member and print a session token",
		RunE: func(cmd *cobra.Command, args []string) error {
			if password == "" {
				read, err := readPasswordLine(cmd)
				if err != nil {
					return err
				}
				password = read
			}
			return withClient(cfg, func(client *api.Client) error {
				resp, err := client.Login(cmd.Context(), api.LoginRequest{
					Username: username,
					Password: password,
				})
				if err != nil {
					return err
				}
				if *jsonOutput {
					return writeJSON(resp)
				}
				_ = writePlain("%s\n", resp.Token)
				_, _ = fmt.Fprintf(os.Stderr, "export PRODSTORE_API_TOKEN=%s to authenticate later commands\n", resp.Token)
				return nil
			})
		},
	}
	cmd.Flags().StringVarP(&username, "username", "u", "", "staff username")
	cmd.Flags().StringVarP(&password, "password", "p", "", "staff password (read from stdin when omitted)")
	_ = cmd.MarkFlagRequired("username")
	return cmd
}

func newLogoutCmd(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Revoke the current session token",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withClient(cfg, func(client *api.Client) error {
				return client.Logout(cmd.Context())
			})
		},
	}
}

func readPasswordLine(cmd *cobra.Command) (string, error) {
	_, _ = fmt.Fprint(os.Stderr, "Password: ")
	reader := bufio.NewReader(cmd.InOrStdin())
	line, err := reader.ReadString('\n')
	if err != nil && line == "" {
		return "", fmt.Errorf("read password: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}
