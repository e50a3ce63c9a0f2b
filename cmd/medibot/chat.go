package main

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/fwojciec/medibot"
	"github.com/fwojciec/medibot/bot"
)

// Run executes the recommend command.
func (c *RecommendCmd) Run(deps *Dependencies) error {
	rec, _, err := deps.Bot.Recommend(deps.Ctx, nil, c.Symptoms)
	if err != nil {
		printBotError(deps.Stderr, err)
		return err
	}

	writeRecommendation(deps.Stdout, rec)
	return nil
}

// Run executes the ask command.
func (c *AskCmd) Run(deps *Dependencies) error {
	answer, _, err := deps.Bot.Answer(deps.Ctx, nil, c.Question)
	if err != nil {
		printBotError(deps.Stderr, err)
		return err
	}

	fmt.Fprintln(deps.Stdout, answer)
	return nil
}

const chatHelp = `Describe your symptoms to get doctor recommendations.
  /ask <question>   ask a general health question
  /list             list specializations
  /browse <label>   list doctors of a specialization
  /history          show this conversation
  /quit             leave`

// Run executes the chat command. The conversation lives only for the
// duration of the session.
func (c *ChatCmd) Run(deps *Dependencies) error {
	fmt.Fprintln(deps.Stdout, chatHelp)

	var tr medibot.Transcript
	scanner := bufio.NewScanner(deps.Stdin)
	for {
		fmt.Fprint(deps.Stdout, "> ")
		if !scanner.Scan() {
			fmt.Fprintln(deps.Stdout)
			return scanner.Err()
		}

		line := strings.TrimSpace(scanner.Text())
		cmd, rest, _ := strings.Cut(line, " ")
		rest = strings.TrimSpace(rest)

		switch cmd {
		case "":
			continue
		case "/quit", "/exit":
			return nil
		case "/help":
			fmt.Fprintln(deps.Stdout, chatHelp)
		case "/history":
			if tr.Len() == 0 {
				fmt.Fprintln(deps.Stdout, "No messages yet.")
				continue
			}
			fmt.Fprintln(deps.Stdout, medibot.FormatTranscript(tr))
		case "/list":
			(&SpecializationsCmd{}).Run(deps)
		case "/browse":
			(&BrowseCmd{Specialization: rest}).Run(deps)
		case "/ask":
			answer, next, err := deps.Bot.Answer(deps.Ctx, tr, rest)
			if err != nil {
				printBotError(deps.Stdout, err)
				continue
			}
			tr = next
			fmt.Fprintln(deps.Stdout, answer)
		default:
			rec, next, err := deps.Bot.Recommend(deps.Ctx, tr, line)
			if err != nil {
				printBotError(deps.Stdout, err)
				continue
			}
			tr = next
			writeRecommendation(deps.Stdout, rec)
		}
	}
}

func writeRecommendation(w io.Writer, rec *bot.Recommendation) {
	fmt.Fprintln(w, "Matching doctors:")
	fmt.Fprintln(w)
	fmt.Fprintln(w, medibot.FormatSymptomMatches(rec.Doctors))
	fmt.Fprintln(w)
	if rec.Included < len(rec.Doctors) {
		fmt.Fprintf(w, "Summary (first %d of %d doctors):\n", rec.Included, len(rec.Doctors))
	} else {
		fmt.Fprintln(w, "Summary:")
	}
	fmt.Fprintln(w, rec.Summary)
}

func printBotError(w io.Writer, err error) {
	if medibot.ErrorCode(err) == medibot.ENOTFOUND {
		fmt.Fprintln(w, noMatches)
		return
	}
	fmt.Fprintf(w, "error: %s\n", medibot.ErrorMessage(err))
}
