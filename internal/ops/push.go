package ops

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"
	"go.uber.org/zap"

	"github.com/maxepunk/ALN-Ecosystem/internal/errors"
	"github.com/maxepunk/ALN-Ecosystem/internal/notion"
)

// Draft is a token-generation work session awaiting review.
type Draft struct {
	SessionID string       `json:"session_id"`
	CreatedAt string       `json:"created_at"`
	Focus     string       `json:"focus"`
	Tokens    []DraftEntry `json:"tokens"`
}

// DraftEntry is one drafted token plus its review status. Only entries with
// status "approved" are pushed.
type DraftEntry struct {
	Status string     `json:"status"`
	Token  DraftToken `json:"token"`
}

// DraftToken is the editable form of a token before it becomes an Element
// page in the database.
type DraftToken struct {
	ElementName         string      `json:"notion_element_name"`
	RFID                string      `json:"SF_RFID"`
	ValueRating         int         `json:"SF_ValueRating"`
	MemoryType          string      `json:"SF_MemoryType"`
	Group               string      `json:"SF_Group,omitempty"`
	Summary             string      `json:"summary,omitempty"`
	DisplayText         string      `json:"display_text"`
	CharacterPOV        string      `json:"character_pov,omitempty"`
	BasicType           string      `json:"basic_type,omitempty"`
	NarrativeThreads    []string    `json:"narrative_threads,omitempty"`
	TimelineEvent       string      `json:"timeline_event,omitempty"`
	TimelineEventNeeded *DraftEvent `json:"timeline_event_needed,omitempty"`
}

// DraftEvent describes a timeline event to create before the token that
// references it.
type DraftEvent struct {
	Title        string   `json:"title"`
	Date         string   `json:"date,omitempty"`
	Notes        string   `json:"notes,omitempty"`
	CharacterIDs []string `json:"character_ids,omitempty"`
}

// PushInput configures a push run.
type PushInput struct {
	// Yes skips the confirmation step.
	Yes bool
	// Confirm is called with a human-readable summary before any write.
	// Required unless Yes is set; returning false aborts with no changes.
	Confirm func(summary string) bool
}

// PushOutput reports what a push created.
type PushOutput struct {
	SessionID             string   `json:"session_id"`
	Created               int      `json:"created"`
	Failed                int      `json:"failed"`
	TimelineEventsCreated []string `json:"timeline_events_created,omitempty"`
	ArchivePath           string   `json:"archive_path,omitempty"`
	Aborted               bool     `json:"aborted,omitempty"`
}

// Push creates Element pages for every approved token in the current draft
// session, creating referenced timeline events first. A failed create is
// counted and the batch continues. On success the draft is archived and
// reset with a fresh session id.
func Push(ctx context.Context, deps Deps, input PushInput) (*PushOutput, error) {
	log := deps.logger()

	sessionDir := filepath.Join(deps.path(deps.Config.CacheDir), "work-session")
	draftPath := filepath.Join(sessionDir, "draft.json")

	draft, err := loadDraft(draftPath)
	if err != nil {
		return nil, err
	}
	log.Info("loaded draft session",
		zap.String("session", draft.SessionID),
		zap.String("focus", draft.Focus),
		zap.Int("tokens", len(draft.Tokens)))

	var approved []DraftToken
	for _, entry := range draft.Tokens {
		if entry.Status == "approved" {
			approved = append(approved, entry.Token)
		}
	}

	out := &PushOutput{SessionID: draft.SessionID}
	if len(approved) == 0 {
		log.Info("no approved tokens in session, nothing to push")
		return out, nil
	}

	chars, err := loadCharacterLookup(deps.path(deps.Config.CacheDir))
	if err != nil {
		return nil, err
	}

	if !input.Yes {
		if input.Confirm == nil {
			return nil, errors.NewInvalidRequest("confirmation required; pass --yes to skip")
		}
		if !input.Confirm(pushSummary(approved)) {
			out.Aborted = true
			log.Info("push aborted, no changes made")
			return out, nil
		}
	}

	for _, tok := range approved {
		if tok.TimelineEventNeeded != nil {
			eventID, err := createTimelineEvent(ctx, deps, *tok.TimelineEventNeeded)
			if err != nil {
				log.Warn("timeline event create failed, proceeding without it",
					zap.String("title", tok.TimelineEventNeeded.Title), zap.Error(err))
			} else {
				tok.TimelineEvent = eventID
				out.TimelineEventsCreated = append(out.TimelineEventsCreated, eventID)
			}
		}

		if err := createElement(ctx, deps, tok, chars); err != nil {
			log.Warn("element create failed",
				zap.String("name", tok.ElementName), zap.Error(err))
			out.Failed++
			continue
		}
		out.Created++
	}

	if out.Created > 0 {
		archivePath, err := archiveDraft(sessionDir, draftPath, draft)
		if err != nil {
			return nil, err
		}
		out.ArchivePath = archivePath
	}

	log.Info("push complete",
		zap.Int("created", out.Created),
		zap.Int("failed", out.Failed),
		zap.Int("timeline_events", len(out.TimelineEventsCreated)))
	return out, nil
}

func loadDraft(path string) (*Draft, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NewMissingInput(path,
				"create tokens with the token-generator workflow first")
		}
		return nil, errors.NewInternal(err)
	}

	var draft Draft
	if err := json.Unmarshal(raw, &draft); err != nil {
		return nil, errors.NewInvalidRequest(fmt.Sprintf("draft.json is not valid JSON: %v", err))
	}
	return &draft, nil
}

// loadCharacterLookup maps character slugs to page ids using the
// characters.json written by a prior graph run.
func loadCharacterLookup(cacheDir string) (map[string]string, error) {
	path := filepath.Join(cacheDir, "graph", "characters.json")
	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NewMissingInput(path, "run the graph command first")
		}
		return nil, errors.NewInternal(err)
	}

	var doc struct {
		Characters []struct {
			ID   string `json:"id"`
			Slug string `json:"slug"`
		} `json:"characters"`
	}
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, errors.NewInternal(err)
	}

	lookup := make(map[string]string, len(doc.Characters))
	for _, c := range doc.Characters {
		lookup[c.Slug] = c.ID
	}
	return lookup, nil
}

func pushSummary(approved []DraftToken) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Ready to create %d elements:\n", len(approved))
	for i, tok := range approved {
		pov := tok.CharacterPOV
		if pov == "" {
			pov = "N/A"
		}
		fmt.Fprintf(&b, "%d. %s (rfid %s, pov %s)\n", i+1, tok.ElementName, tok.RFID, pov)
	}
	return b.String()
}

func createTimelineEvent(ctx context.Context, deps Deps, event DraftEvent) (string, error) {
	props := map[string]any{
		"Description": notion.TitleProp(event.Title),
	}
	if event.Date != "" {
		props["Date"] = notion.DateProp(event.Date)
	}
	if event.Notes != "" {
		props["Notes"] = notion.RichTextProp(event.Notes)
	}
	if len(event.CharacterIDs) > 0 {
		props["Characters Involved"] = notion.RelationProp(event.CharacterIDs...)
	}

	return deps.Client.CreatePage(ctx, notion.CreatePageRequest{
		Parent:     notion.Parent{DatabaseID: deps.Config.TimelineDatabaseID},
		Properties: props,
	})
}

func createElement(ctx context.Context, deps Deps, tok DraftToken, chars map[string]string) error {
	log := deps.logger()

	basicType := tok.BasicType
	if basicType == "" {
		basicType = "Memory Token Image"
	}

	props := map[string]any{
		"Name":             notion.TitleProp(tok.ElementName),
		"Basic Type":       notion.SelectProp(basicType),
		"Status":           notion.StatusProp("Done"),
		"Description/Text": notion.RichTextProp(elementDescription(tok)),
	}

	if tok.CharacterPOV != "" {
		if ownerID, ok := chars[tok.CharacterPOV]; ok {
			props["Owner"] = notion.RelationProp(ownerID)
		} else {
			log.Warn("character not in lookup, element left unowned",
				zap.String("slug", tok.CharacterPOV))
		}
	}
	if len(tok.NarrativeThreads) > 0 {
		props["Narrative Threads"] = notion.MultiSelectProp(tok.NarrativeThreads)
	}
	if tok.TimelineEvent != "" {
		props["Timeline Event"] = notion.RelationProp(tok.TimelineEvent)
	}

	_, err := deps.Client.CreatePage(ctx, notion.CreatePageRequest{
		Parent:     notion.Parent{DatabaseID: deps.Config.ElementsDatabaseID},
		Properties: props,
	})
	return err
}

// elementDescription rebuilds the Description/Text field: display text
// followed by the SF_ tag block the sync parser reads back.
func elementDescription(tok DraftToken) string {
	var b strings.Builder
	b.WriteString(tok.DisplayText)
	fmt.Fprintf(&b, "\n\nSF_RFID: [%s]", tok.RFID)
	fmt.Fprintf(&b, "\nSF_ValueRating: [%d]", tok.ValueRating)
	fmt.Fprintf(&b, "\nSF_MemoryType: [%s]", tok.MemoryType)
	fmt.Fprintf(&b, "\nSF_Group: [%s]", tok.Group)
	if tok.Summary != "" {
		fmt.Fprintf(&b, "\nSF_Summary: [%s]", tok.Summary)
	}
	return b.String()
}

// archiveDraft moves the finished session into work-session/archive and
// resets draft.json with a fresh session id.
func archiveDraft(sessionDir, draftPath string, draft *Draft) (string, error) {
	archiveDir := filepath.Join(sessionDir, "archive")
	if err := os.MkdirAll(archiveDir, 0o755); err != nil {
		return "", errors.NewInternal(err)
	}

	sessionID := draft.SessionID
	if sessionID == "" {
		sessionID = "unknown"
	}
	archivePath := filepath.Join(archiveDir, sessionID+".json")

	raw, err := json.MarshalIndent(draft, "", "  ")
	if err != nil {
		return "", errors.NewInternal(err)
	}
	if err := os.WriteFile(archivePath, append(raw, '\n'), 0o644); err != nil {
		return "", errors.NewInternal(err)
	}

	now := time.Now().UTC()
	fresh := Draft{
		SessionID: "session-" + ulid.Make().String(),
		CreatedAt: now.Format(time.RFC3339),
		Focus:     "",
		Tokens:    []DraftEntry{},
	}
	raw, err = json.MarshalIndent(fresh, "", "  ")
	if err != nil {
		return "", errors.NewInternal(err)
	}
	if err := os.WriteFile(draftPath, append(raw, '\n'), 0o644); err != nil {
		return "", errors.NewInternal(err)
	}

	return archivePath, nil
}
