package httpapi

import (
	"net/http"
	"strings"

	"github.com/goliatone/go-router"
	"github.com/macromate/go-macromate/command"
	"github.com/macromate/go-macromate/pkg/types"
	"github.com/macromate/go-macromate/query"
)

func (a *API) chatHistory(c router.Context) error {
	actor, err := a.actor(c)
	if err != nil {
		return a.fail(c, err)
	}
	transcript, err := a.queries.ChatHistory.Query(c.Context(), query.ChatHistoryInput{Actor: actor})
	if err != nil {
		return a.fail(c, err)
	}
	return c.JSON(http.StatusOK, transcript)
}

type chatRequest struct {
	Message string `json:"message"`
}

func (a *API) sendChat(c router.Context) error {
	actor, err := a.actor(c)
	if err != nil {
		return a.fail(c, err)
	}
	var req chatRequest
	if err := a.bind(c, &req); err != nil {
		return a.fail(c, err)
	}
	transcript := &types.ChatTranscript{}
	err = a.commands.ChatSend.Execute(c.Context(), command.ChatSendInput{
		Message: req.Message,
		Actor:   actor,
		Result:  transcript,
	})
	if err != nil {
		return a.fail(c, err)
	}
	return c.JSON(http.StatusOK, transcript)
}

func (a *API) resetChat(c router.Context) error {
	actor, err := a.actor(c)
	if err != nil {
		return a.fail(c, err)
	}
	if err := a.commands.ChatReset.Execute(c.Context(), command.ChatResetInput{Actor: actor}); err != nil {
		return a.fail(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (a *API) settings(c router.Context) error {
	actor, err := a.actor(c)
	if err != nil {
		return a.fail(c, err)
	}
	var keys []string
	for _, key := range strings.Split(c.Query("keys"), ",") {
		if key = strings.TrimSpace(key); key != "" {
			keys = append(keys, key)
		}
	}
	snapshot, err := a.queries.Settings.Query(c.Context(), query.SettingsQueryInput{
		Keys:  keys,
		Actor: actor,
	})
	if err != nil {
		return a.fail(c, err)
	}
	return c.JSON(http.StatusOK, snapshot)
}

type settingRequest struct {
	Key   string         `json:"key"`
	Value map[string]any `json:"value"`
}

type settingView struct {
	Key     string         `json:"key"`
	Value   map[string]any `json:"value"`
	Version int            `json:"version"`
}

func (a *API) upsertSetting(c router.Context) error {
	actor, err := a.actor(c)
	if err != nil {
		return a.fail(c, err)
	}
	var req settingRequest
	if err := a.bind(c, &req); err != nil {
		return a.fail(c, err)
	}
	record := &types.SettingRecord{}
	err = a.commands.SettingUpsert.Execute(c.Context(), command.SettingUpsertInput{
		Key:    req.Key,
		Value:  req.Value,
		Actor:  actor,
		Result: record,
	})
	if err != nil {
		return a.fail(c, err)
	}
	return c.JSON(http.StatusOK, settingView{
		Key:     record.Key,
		Value:   record.Value,
		Version: record.Version,
	})
}

func (a *API) deleteSetting(c router.Context) error {
	actor, err := a.actor(c)
	if err != nil {
		return a.fail(c, err)
	}
	err = a.commands.SettingDelete.Execute(c.Context(), command.SettingDeleteInput{
		Key:   c.Param("key"),
		Actor: actor,
	})
	if err != nil {
		return a.fail(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (a *API) activityFeed(c router.Context) error {
	actor, err := a.actor(c)
	if err != nil {
		return a.fail(c, err)
	}
	userID, err := optionalUUID(c.Query("user_id"), "user_id")
	if err != nil {
		return a.fail(c, err)
	}
	var verbs []string
	for _, verb := range strings.Split(c.Query("verb"), ",") {
		if verb = strings.TrimSpace(verb); verb != "" {
			verbs = append(verbs, verb)
		}
	}
	page, err := a.queries.ActivityFeed.Query(c.Context(), types.ActivityFilter{
		Actor:      actor,
		UserID:     userID,
		Verbs:      verbs,
		Pagination: pagination(c),
	})
	if err != nil {
		return a.fail(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{
		"records":     page.Records,
		"total":       page.Total,
		"next_offset": page.NextOffset,
		"has_more":    page.HasMore,
	})
}
