package sessions

import (
	"context"
	"fmt"
	"strings"

	"carebridge-backend/prompts"
	"carebridge-backend/stores"
)

// RunStreamInteraction runs one turn of the consultation. The user message is
// persisted before the model is invoked; response chunks are forwarded on the
// returned channel as they arrive; once the upstream stream completes, the
// accumulated assistant turn is persisted before the channel closes. On
// upstream failure no assistant turn is written.
func (s *ChatSession) RunStreamInteraction(ctx context.Context, message string, patientContext map[string]any) (<-chan string, <-chan error) {
	out := make(chan string)
	errc := make(chan error, 1)

	go func() {
		defer close(out)
		defer close(errc)

		history, err := s.Store.Get(ctx, s.SessionID)
		if err != nil {
			errc <- fmt.Errorf("failed to fetch history: %w", err)
			return
		}

		// A fresh conversation opens with the patient context as a
		// system turn, when one was supplied.
		if len(history) == 0 && len(patientContext) > 0 {
			contextText, err := prompts.PatientContextTurn(patientContext)
			if err != nil {
				s.Logger.Printf("Error encoding patient context: %v", err)
			} else {
				contextTurn := stores.Turn{Role: stores.RoleSystem, Text: contextText}
				if err := s.Store.Append(ctx, s.SessionID, contextTurn); err != nil {
					s.Logger.Printf("Error saving patient context turn: %v", err)
				}
				history = append(history, contextTurn)
			}
		}

		// The user turn must be durable before the model is invoked; a
		// store failure here ends the interaction.
		if err := s.Store.Append(ctx, s.SessionID, stores.Turn{Role: stores.RoleUser, Text: message}); err != nil {
			errc <- fmt.Errorf("failed to save user message: %w", err)
			return
		}

		resChan, errChan := s.Model.StreamGenerate(ctx, s.SystemPrompt, history, message)

		var accumulated strings.Builder

		for resChan != nil || errChan != nil {
			select {
			case chunk, ok := <-resChan:
				if !ok {
					resChan = nil
					continue
				}
				accumulated.WriteString(chunk)
				select {
				case out <- chunk:
				case <-ctx.Done():
					return
				}

			case err, ok := <-errChan:
				if !ok {
					errChan = nil
					continue
				}
				if err != nil {
					errc <- err
					return
				}
			}
		}

		if accumulated.Len() > 0 {
			assistantTurn := stores.Turn{Role: stores.RoleAssistant, Text: accumulated.String()}
			if err := s.Store.Append(ctx, s.SessionID, assistantTurn); err != nil {
				s.Logger.Printf("Error saving assistant response: %v", err)
			}
		}
	}()

	return out, errc
}

// RunStreamToWriter runs one turn and delivers it through a StreamWriter.
// Returns the error that ended the stream, nil on clean completion.
func (s *ChatSession) RunStreamToWriter(ctx context.Context, message string, patientContext map[string]any, w StreamWriter) error {
	out, errc := s.RunStreamInteraction(ctx, message, patientContext)

	for out != nil || errc != nil {
		select {
		case chunk, ok := <-out:
			if !ok {
				out = nil
				continue
			}
			if err := w.WriteChunk(chunk); err != nil {
				return fmt.Errorf("failed to write chunk: %w", err)
			}
			w.Flush()

		case err, ok := <-errc:
			if !ok {
				errc = nil
				continue
			}
			if err != nil {
				if werr := w.WriteError(err); werr != nil {
					s.Logger.Printf("Error writing stream error: %v", werr)
				}
				return err
			}

		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return nil
}

// History returns the conversation's turns in order.
func (s *ChatSession) History(ctx context.Context) ([]stores.Turn, error) {
	return s.Store.Get(ctx, s.SessionID)
}

// End removes the conversation from the store.
func (s *ChatSession) End(ctx context.Context) error {
	return s.Store.Expire(ctx, s.SessionID)
}
