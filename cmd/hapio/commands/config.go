package commands

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"
	"gopkg.in/yaml.v3"

	"github.com/fivetwenty-io/hapio-client/internal/constants"
	"github.com/fivetwenty-io/hapio-client/pkg/hapioclient"
)

// Masked replaces secrets in printed configuration.
const Masked = "***"

// Config represents the CLI configuration file.
type Config struct {
	API    string `json:"api,omitempty"    yaml:"api,omitempty"`
	Token  string `json:"token,omitempty"  yaml:"token,omitempty"`
	Output string `json:"output,omitempty" yaml:"output,omitempty"`
}

// NewConfigCommand creates the config command group.
func NewConfigCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage CLI configuration",
		Long:  "Show and update the API base URL and token used by the Hapio CLI",
	}

	cmd.AddCommand(newConfigShowCommand())
	cmd.AddCommand(newConfigSetTokenCommand())
	cmd.AddCommand(newConfigSetAPICommand())

	return cmd
}

func newConfigShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		Long:  "Display the effective configuration, merged from flags, environment and config file",
		RunE: func(cmd *cobra.Command, args []string) error {
			config := loadConfig()
			if config.Token != "" {
				config.Token = Masked
			}

			s := &session{out: cmd.OutOrStdout(), errOut: cmd.ErrOrStderr(), format: config.Output}

			switch config.Output {
			case constants.FormatJSON:
				return s.writeJSON(config)
			case constants.FormatYAML:
				return s.writeYAML(config)
			default:
				return s.writeTable([]string{"Property", "Value"}, [][]string{
					{"API", orNotAvailable(config.API)},
					{"Token", orNotAvailable(config.Token)},
					{"Output", orNotAvailable(config.Output)},
					{"Config File", orNotAvailable(viper.ConfigFileUsed())},
				})
			}
		},
	}
}

func newConfigSetTokenCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "set-token [TOKEN]",
		Short: "Store the API token",
		Long:  "Store the API token in the config file. Without an argument the token is read from the terminal without echo.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var token string

			if len(args) == 1 {
				token = args[0]
			} else {
				read, err := readToken(cmd.InOrStdin(), cmd.ErrOrStderr())
				if err != nil {
					return err
				}

				token = read
			}

			token = strings.TrimSpace(token)
			if token == "" {
				return constants.ErrEmptyToken
			}

			config := loadConfig()
			config.Token = token

			err := saveConfig(config)
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Token saved")

			return nil
		},
	}
}

func newConfigSetAPICommand() *cobra.Command {
	return &cobra.Command{
		Use:   "set-api URL",
		Short: "Store the API base URL",
		Long:  "Store the API base URL, for example https://eu-central-1.hapio.net/v1/",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			baseURL, err := hapioclient.NormalizeBaseURL(args[0])
			if err != nil {
				return err
			}

			config := loadConfig()
			config.API = baseURL

			err = saveConfig(config)
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "API set to %s\n", baseURL)

			return nil
		},
	}
}

// readToken prompts for the token, hiding input on a terminal.
func readToken(in io.Reader, prompt io.Writer) (string, error) {
	_, _ = fmt.Fprint(prompt, "API token: ")

	if file, ok := in.(*os.File); ok && term.IsTerminal(int(file.Fd())) {
		secret, err := term.ReadPassword(int(file.Fd()))
		_, _ = fmt.Fprintln(prompt)

		if err != nil {
			return "", fmt.Errorf("failed to read token: %w", err)
		}

		return string(secret), nil
	}

	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && err != io.EOF {
		return "", fmt.Errorf("failed to read token: %w", err)
	}

	return line, nil
}

func loadConfig() *Config {
	return &Config{
		API:    viper.GetString("api"),
		Token:  viper.GetString("token"),
		Output: viper.GetString("output"),
	}
}

func configFilePath() (string, error) {
	if configFile := viper.GetString("config"); configFile != "" {
		return configFile, nil
	}

	if configFile := viper.ConfigFileUsed(); configFile != "" {
		return configFile, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}

	configDir := filepath.Join(home, ".hapio")

	err = os.MkdirAll(configDir, constants.ConfigDirPerm)
	if err != nil {
		return "", fmt.Errorf("failed to create config directory: %w", err)
	}

	return filepath.Join(configDir, "config.yml"), nil
}

func saveConfig(config *Config) error {
	configFile, err := configFilePath()
	if err != nil {
		return err
	}

	if config.Output == constants.FormatTable {
		config.Output = ""
	}

	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config to YAML: %w", err)
	}

	err = os.WriteFile(configFile, data, constants.ConfigFilePerm)
	if err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}
