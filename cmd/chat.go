package cmd

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/weatherchat/weatherchat/internal/chat"
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Start the interactive chat loop",
	Long:  `Start a line-based conversation on stdin/stdout. Type 'exit' to quit.`,
	RunE:  runChat,
}

func runChat(cmd *cobra.Command, args []string) error {
	bot := newBot()
	ctx := cmd.Context()

	fmt.Println("Welcome to the Weather Chatbot!")
	fmt.Println("You can ask about the weather for any location in the world, for past dates, today, and up to 6 days in the future.")
	fmt.Println("You can also chat with me about other topics!")
	fmt.Println("Type 'exit' to quit the chatbot.")

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("\nYou: ")
		if !scanner.Scan() {
			break
		}
		if ctx.Err() != nil {
			break
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if strings.EqualFold(line, "exit") {
			fmt.Println("Goodbye!")
			break
		}

		fmt.Printf("Chatbot: %s\n", runTurn(ctx, bot, line))
	}

	return scanner.Err()
}

// runTurn shields the loop from a panicking turn; one bad turn must never
// take the conversation down.
func runTurn(ctx context.Context, bot *chat.Bot, line string) (reply string) {
	defer func() {
		if r := recover(); r != nil {
			log.Errorw("Recovered from panic in chat turn", "panic", r)
			reply = fmt.Sprintf("I'm sorry, I encountered an error: %v", r)
		}
	}()
	return bot.HandleTurn(ctx, line)
}
