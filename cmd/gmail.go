package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tg2app/google-skill/internal/authproxy"
	"github.com/tg2app/google-skill/internal/gmail"
)

func newGmailCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "gmail",
		Short: "Gmail actions",
	}

	cmd.AddCommand(newGmailListCmd())
	cmd.AddCommand(newGmailReadCmd())
	cmd.AddCommand(newGmailSendCmd())
	return cmd
}

func newGmailListCmd() *cobra.Command {
	var unread bool
	var maxResults int64

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recent emails",
		RunE: func(cmd *cobra.Command, args []string) error {
			token, consentPending, err := obtainToken(cmd, authproxy.ScopeGmailList)
			if err != nil || consentPending {
				return err
			}

			client, err := gmail.NewClient(cmd.Context(), token)
			if err != nil {
				return err
			}

			messages, err := client.ListMessages(unread, maxResults)
			if err != nil {
				return handleAPIError(cmd, err, authproxy.ScopeGmailList)
			}

			fmt.Fprint(cmd.OutOrStdout(), gmail.RenderList(messages, unread))
			return nil
		},
	}

	cmd.Flags().BoolVar(&unread, "unread", false, "only list unread emails")
	cmd.Flags().Int64Var(&maxResults, "max", 10, "maximum number of emails to list")
	return cmd
}

func newGmailReadCmd() *cobra.Command {
	var messageID string

	cmd := &cobra.Command{
		Use:   "read",
		Short: "Read a specific email",
		RunE: func(cmd *cobra.Command, args []string) error {
			if messageID == "" {
				return errors.New("--id is required for gmail read")
			}

			token, consentPending, err := obtainToken(cmd, authproxy.ScopeGmailRead)
			if err != nil || consentPending {
				return err
			}

			client, err := gmail.NewClient(cmd.Context(), token)
			if err != nil {
				return err
			}

			msg, err := client.ReadMessage(messageID)
			if err != nil {
				return handleAPIError(cmd, err, authproxy.ScopeGmailRead)
			}

			fmt.Fprint(cmd.OutOrStdout(), gmail.RenderMessage(msg))
			return nil
		},
	}

	cmd.Flags().StringVar(&messageID, "id", "", "ID of the message to read (required)")
	return cmd
}

func newGmailSendCmd() *cobra.Command {
	var recipient, subject, body string

	cmd := &cobra.Command{
		Use:   "send",
		Short: "Send an email",
		RunE: func(cmd *cobra.Command, args []string) error {
			if recipient == "" || subject == "" || body == "" {
				return errors.New("--recipient, --subject, and --body are required for gmail send")
			}

			token, consentPending, err := obtainToken(cmd, authproxy.ScopeGmailSend)
			if err != nil || consentPending {
				return err
			}

			client, err := gmail.NewClient(cmd.Context(), token)
			if err != nil {
				return err
			}

			messageID, err := client.SendEmail(recipient, subject, body)
			if err != nil {
				return handleAPIError(cmd, err, authproxy.ScopeGmailSend)
			}

			fmt.Fprint(cmd.OutOrStdout(), gmail.RenderSent(messageID, recipient, subject))
			return nil
		},
	}

	cmd.Flags().StringVar(&recipient, "recipient", "", "recipient email address (required)")
	cmd.Flags().StringVar(&subject, "subject", "", "email subject (required)")
	cmd.Flags().StringVar(&body, "body", "", "email body text (required)")
	return cmd
}
