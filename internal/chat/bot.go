package chat

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/trknhr/cooktime/internal/estimator"
	"github.com/trknhr/cooktime/internal/feature"
	"github.com/trknhr/cooktime/internal/predictor"
)

// Reply is the outcome of one user line. Predict asks the caller to run a
// full estimate; Preview asks for a quiet refresh after the recipe changed.
type Reply struct {
	Messages []Message
	Predict  bool
	Preview  bool
}

// Bot applies chat intents to a session. Estimation itself is left to the
// caller so it can run off the input goroutine.
type Bot struct {
	session   *predictor.Session
	responder *Responder
	now       func() time.Time
}

func NewBot(s *predictor.Session, r *Responder) *Bot {
	return &Bot{session: s, responder: r, now: time.Now}
}

func (b *Bot) Session() *predictor.Session { return b.session }

func (b *Bot) Responder() *Responder { return b.responder }

func (b *Bot) say(kind MessageKind, text string) Message {
	return Message{Sender: assistantName, Text: text, Kind: kind, At: b.now()}
}

func (b *Bot) User(text string) Message {
	return Message{Sender: "You", Text: text, Kind: UserMessage, At: b.now()}
}

func (b *Bot) System(text string) Message {
	return b.say(SystemMessage, text)
}

func (b *Bot) Welcome() Message {
	return b.say(SystemMessage, b.responder.Welcome())
}

func (b *Bot) Handle(text string) Reply {
	in := Parse(text, b.session.Catalog())
	if in.Err != nil {
		return b.reply(ErrorMessage, b.commandError(in))
	}

	switch in.Kind {
	case Greeting:
		return b.reply(SystemMessage, b.responder.Greeting())
	case Farewell:
		return b.reply(SystemMessage, b.responder.Farewell())
	case Help:
		return b.reply(SystemMessage, b.responder.Help())
	case About:
		return b.reply(SystemMessage, b.responder.About())
	case PredictTime:
		return b.predict()
	case Tip:
		return b.reply(SystemMessage, b.responder.Tip(b.session.Selection()))
	case IngredientTip:
		return b.reply(SystemMessage, b.responder.IngredientTip(in.Item))
	case Instructions:
		return b.reply(SystemMessage, b.responder.Instructions(in.Item))
	case AddIngredient:
		return b.add(in)
	case RemoveIngredient:
		return b.remove(in)
	case SetMethod:
		return b.setMethod(in)
	case ClearRecipe:
		b.session.Clear()
		return b.reply(SystemMessage, "All ingredients cleared.")
	case ShowRecipe:
		return b.reply(SystemMessage, b.describe())
	default:
		return b.reply(SystemMessage, b.responder.Fallback())
	}
}

func (b *Bot) reply(kind MessageKind, text string) Reply {
	return Reply{Messages: []Message{b.say(kind, text)}}
}

func (b *Bot) commandError(in Intent) string {
	if errors.Is(in.Err, ErrMissingItem) {
		return fmt.Sprintf("Which ingredient? Try \"%s chicken\".", in.Kind)
	}
	return in.Err.Error()
}

func (b *Bot) predict() Reply {
	if b.session.Selection().IsEmpty() {
		return b.reply(SystemMessage, "Please add some ingredients first, then I can predict the cooking time.")
	}
	r := Reply{Predict: true}
	if !b.session.Ready() {
		r.Messages = append(r.Messages, b.say(SystemMessage, "I'm still training. I'll answer as soon as I'm ready."))
	}
	return r
}

func (b *Bot) add(in Intent) Reply {
	name, known, err := b.session.Add(in.Item, in.Quantity)
	if err != nil {
		return b.reply(ErrorMessage, err.Error())
	}
	text := fmt.Sprintf("Added %d %s.", in.Quantity, name)
	if !known {
		text += fmt.Sprintf(" I don't know %s, so it won't change the estimate.", name)
	}
	r := b.reply(SystemMessage, text)
	r.Preview = b.session.Ready()
	return r
}

func (b *Bot) remove(in Intent) Reply {
	name, ok := b.session.Remove(in.Item)
	if !ok {
		return b.reply(SystemMessage, fmt.Sprintf("%s isn't in the recipe.", name))
	}
	r := b.reply(SystemMessage, fmt.Sprintf("Removed %s.", name))
	r.Preview = b.session.Ready() && !b.session.Selection().IsEmpty()
	return r
}

func (b *Bot) setMethod(in Intent) Reply {
	m, ok := feature.ParseMethod(in.Item)
	b.session.SetMethod(m)
	text := fmt.Sprintf("Method set to %s.", strings.ToLower(m.String()))
	if !ok {
		text = fmt.Sprintf("I don't know %q, so I'll simmer.", in.Item)
	}
	r := b.reply(SystemMessage, text)
	r.Preview = b.session.Ready() && !b.session.Selection().IsEmpty()
	return r
}

func (b *Bot) describe() string {
	sel := b.session.Selection()
	if sel.IsEmpty() {
		return fmt.Sprintf("The recipe is empty. Method: %s.", strings.ToLower(sel.Method.String()))
	}
	return fmt.Sprintf("Recipe: %s. Method: %s.", DescribeSelection(sel), strings.ToLower(sel.Method.String()))
}

// Predicted renders a finished estimate followed by a tip and any ordering
// hints.
func (b *Bot) Predicted(res predictor.Result) []Message {
	msgs := []Message{
		b.say(PredictionMessage, b.responder.Prediction(res)),
		b.say(SystemMessage, b.responder.Tip(res.Selection)),
	}
	for _, h := range b.responder.Pairings(res.Selection, b.session.Catalog()) {
		msgs = append(msgs, b.say(SystemMessage, h))
	}
	return msgs
}

func (b *Bot) Failed(err error) Message {
	switch {
	case errors.Is(err, predictor.ErrEmptySelection):
		return b.say(SystemMessage, "Please add some ingredients first, then I can predict the cooking time.")
	case errors.Is(err, estimator.ErrNotReady):
		return b.say(ErrorMessage, b.responder.TrainingFailed(err))
	default:
		return b.say(ErrorMessage, fmt.Sprintf("Error predicting cooking time: %v", err))
	}
}
