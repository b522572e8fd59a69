package cli

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/manifoldco/promptui"

	"github.com/roofingmaterials/roofserve/config"
)

// ErrCancelled is returned when the user aborts a prompt.
var ErrCancelled = errors.New("cancelled")

// Prompter asks the user for values.
type Prompter interface {
	// Ask returns the entered value, or def when the input is left empty.
	Ask(label, def string, validate func(string) error) (string, error)
	// Confirm returns true when the user answers yes.
	Confirm(label string) (bool, error)
}

// TerminalPrompter prompts on the terminal with promptui.
type TerminalPrompter struct{}

// Ask implements Prompter.
func (TerminalPrompter) Ask(label, def string, validate func(string) error) (string, error) {
	prompt := promptui.Prompt{
		Label:     label,
		Default:   def,
		AllowEdit: true,
		Validate:  validate,
	}
	value, err := prompt.Run()
	if err != nil {
		return "", promptError(err)
	}
	return value, nil
}

// Confirm implements Prompter.
func (TerminalPrompter) Confirm(label string) (bool, error) {
	prompt := promptui.Prompt{
		Label:     label,
		IsConfirm: true,
	}
	if _, err := prompt.Run(); err != nil {
		if errors.Is(err, promptui.ErrAbort) {
			return false, nil
		}
		return false, promptError(err)
	}
	return true, nil
}

func promptError(err error) error {
	if errors.Is(err, promptui.ErrInterrupt) || errors.Is(err, promptui.ErrEOF) || errors.Is(err, promptui.ErrAbort) {
		return ErrCancelled
	}
	return err
}

// PromptConfig asks for the settings most deployments change and returns a
// copy of base with the answers applied.
func PromptConfig(p Prompter, base *config.Config) (*config.Config, error) {
	cfg := *base

	port, err := p.Ask("Port", strconv.Itoa(base.Server.Port), validatePort)
	if err != nil {
		return nil, err
	}
	cfg.Server.Port, _ = strconv.Atoi(strings.TrimSpace(port))

	imagesRoot, err := p.Ask("Images directory", base.Storage.ImagesRoot, required("images directory"))
	if err != nil {
		return nil, err
	}
	cfg.Storage.ImagesRoot = strings.TrimSpace(imagesRoot)

	companiesFile, err := p.Ask("Companies document", base.Storage.CompaniesFile, required("companies document"))
	if err != nil {
		return nil, err
	}
	cfg.Storage.CompaniesFile = strings.TrimSpace(companiesFile)

	prefix, err := p.Ask("URL prefix", base.Routes.Prefix, validatePrefix)
	if err != nil {
		return nil, err
	}
	cfg.Routes.Prefix = strings.TrimSpace(prefix)

	return &cfg, nil
}

func validatePort(input string) error {
	n, err := strconv.Atoi(strings.TrimSpace(input))
	if err != nil {
		return errors.New("port must be a number")
	}
	if n < 1 || n > 65535 {
		return errors.New("port must be between 1 and 65535")
	}
	return nil
}

func validatePrefix(input string) error {
	input = strings.TrimSpace(input)
	if !strings.HasPrefix(input, "/") || strings.HasSuffix(input, "/") {
		return errors.New("prefix must start with / and must not end with /")
	}
	if strings.ContainsAny(input, "?#") {
		return errors.New("prefix must not contain ? or #")
	}
	return nil
}

func required(name string) func(string) error {
	return func(input string) error {
		if strings.TrimSpace(input) == "" {
			return fmt.Errorf("%s is required", name)
		}
		return nil
	}
}
