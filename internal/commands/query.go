package commands

import (
	"context"
	"encoding/base64"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/term"

	"github.com/qyf6zs2vmg-hue/CeloraAI/internal/chat"
	"github.com/qyf6zs2vmg-hue/CeloraAI/internal/config"
	"github.com/qyf6zs2vmg-hue/CeloraAI/internal/render"
)

// runQuery performs a one-shot exchange: a fresh session, one prompt, one
// rendered reply.
func runQuery(prompt string) error {
	prompt = strings.TrimSpace(prompt)

	st, err := openStore()
	if err != nil {
		return err
	}
	if _, err := requireUser(st); err != nil {
		return err
	}

	var image string
	if imageFlag != "" {
		image, err = imageToDataURI(imageFlag)
		if err != nil {
			return err
		}
	}

	if prompt == "" && image == "" {
		return fmt.Errorf("nothing to send: supply a prompt or an image")
	}

	gen, _, err := newGenerator()
	if err != nil {
		return err
	}

	ex := chat.NewExchange(st, gen)

	spin := newSpinner("Thinking")
	spin.start()
	sessionID, err := ex.Send(context.Background(), "", prompt, image)
	if err != nil {
		spin.stopWithError()
		return err
	}
	spin.stopQuiet()

	session, ok := st.FindSession(sessionID)
	if !ok || len(session.Messages) < 2 {
		return fmt.Errorf("no reply received")
	}
	reply := session.Messages[len(session.Messages)-1].Content

	if outputFlag != "" {
		if err := os.WriteFile(outputFlag, []byte(reply), 0o644); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
		fmt.Printf("Response saved to %s\n", outputFlag)
		return nil
	}

	if isTerminal() {
		opts := render.LoadOptionsFromConfig().WithWidth(terminalWidth())
		if rendered, rerr := render.Markdown(reply, opts); rerr == nil {
			fmt.Print(rendered)
		} else {
			fmt.Println(reply)
		}
	} else {
		fmt.Println(reply)
	}

	if cfg, cerr := config.LoadConfig(); cerr == nil && cfg.CopyToClipboard {
		if err := chat.CopyMessage(reply); err == nil {
			fmt.Fprintln(os.Stderr, "(copied to clipboard)")
		}
	}

	return nil
}

// imageToDataURI reads an image file and encodes it as an inline data URI.
func imageToDataURI(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read image: %w", err)
	}

	var mime string
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		mime = "image/png"
	case ".jpg", ".jpeg":
		mime = "image/jpeg"
	case ".gif":
		mime = "image/gif"
	case ".webp":
		mime = "image/webp"
	default:
		return "", fmt.Errorf("unsupported image type: %s", filepath.Ext(path))
	}

	return fmt.Sprintf("data:%s;base64,%s", mime, base64.StdEncoding.EncodeToString(data)), nil
}

func terminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return 80
	}
	if width > 120 {
		width = 120
	}
	return width
}

func isTerminal() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}
