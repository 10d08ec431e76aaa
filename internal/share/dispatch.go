package share

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"shareflow/internal/logutil"
)

// Bundle is the platform-agnostic content hand-off a sender receives. It
// carries the enriched post's fields only; senders never see preferences or
// capability descriptors.
type Bundle struct {
	Platform Platform
	Title    string
	Text     string
	URL      string
	Media    []Media
	Hashtags []string // without the '#' prefix
	Mentions []string // without the '@' prefix
}

// ComposeText flattens the bundle into final share text for senders without
// structured fields: text, then URL, then hashtags and mentions on their own
// lines.
func (b Bundle) ComposeText() string {
	var sb strings.Builder
	sb.WriteString(b.Text)
	if b.URL != "" {
		if sb.Len() > 0 {
			sb.WriteString("\n\n")
		}
		sb.WriteString(b.URL)
	}
	if len(b.Hashtags) > 0 {
		if sb.Len() > 0 {
			sb.WriteString("\n\n")
		}
		sb.WriteString(strings.Join(NormalizeHashtags(strings.Join(b.Hashtags, " ")), " "))
	}
	if len(b.Mentions) > 0 {
		if sb.Len() > 0 {
			sb.WriteString("\n")
		}
		for i, m := range b.Mentions {
			if i > 0 {
				sb.WriteString(" ")
			}
			sb.WriteString("@" + strings.TrimPrefix(m, "@"))
		}
	}
	return sb.String()
}

// Sender performs the external hand-off for one delivery method. A nil
// error means the content left the device; UserCancelledError means the user
// backed out before anything was published.
type Sender interface {
	Name() string
	Send(ctx context.Context, b Bundle) error
}

// Senders binds one sender per delivery method.
type Senders struct {
	Native Sender
	Sdk    Sender
	Web    Sender
}

func (s Senders) forMethod(m Method) Sender {
	switch m {
	case MethodNativeIntent:
		return s.Native
	case MethodVendorSdk:
		return s.Sdk
	case MethodWebFallback:
		return s.Web
	default:
		return nil
	}
}

// ResultCode is the stable outcome identifier on a ShareResult.
type ResultCode string

const (
	ResultOK           ResultCode = "OK"
	ResultInvalid      ResultCode = "INVALID_CONTENT"
	ResultNotInstalled ResultCode = "PLATFORM_NOT_INSTALLED"
	ResultNotSupported ResultCode = "PLATFORM_NOT_SUPPORTED"
	ResultCancelled    ResultCode = "CANCELLED"
	ResultSenderError  ResultCode = "SENDER_ERROR"
)

// ShareResult is the normalized outcome of one dispatch. Warnings from
// validation ride along even on success so callers can surface them without
// blocking the action.
type ShareResult struct {
	AttemptID  string
	Success    bool
	Platform   Platform
	Method     Method
	Code       ResultCode
	Message    string
	Validation ValidationResult
}

// dispatchState tracks the per-call state machine. Invalid content is
// terminal before any external call; exactly one sender is invoked per
// successful validation, with no implicit retries.
type dispatchState uint8

const (
	stateCreated dispatchState = iota
	statePreferencesApplied
	stateValidated
	stateMethodResolved
	stateDispatched
	stateCompleted
)

func (s dispatchState) String() string {
	switch s {
	case stateCreated:
		return "created"
	case statePreferencesApplied:
		return "preferences-applied"
	case stateValidated:
		return "validated"
	case stateMethodResolved:
		return "method-resolved"
	case stateDispatched:
		return "dispatched"
	default:
		return "completed"
	}
}

// Dispatcher orchestrates the pipeline: preference application, validation,
// method resolution, then exactly one sender call. It holds no per-call
// state; the only shared mutable data is the catalog's availability
// snapshot, which is read lock-free.
type Dispatcher struct {
	catalog *Catalog
	senders Senders
}

// NewDispatcher wires the catalog and the three method senders.
func NewDispatcher(catalog *Catalog, senders Senders) *Dispatcher {
	return &Dispatcher{catalog: catalog, senders: senders}
}

// Plan runs the pipeline up to method resolution without dispatching:
// the enriched post, its validation result, and the method that would be
// used. Intended for dry runs and previews.
func (d *Dispatcher) Plan(post Post, prefs Preferences) (Post, ValidationResult, Method, error) {
	caps, err := d.catalog.Capabilities(post.Platform)
	if err != nil {
		return Post{}, ValidationResult{}, MethodNotSupported, err
	}
	enriched := ApplyPreferences(post, prefs, caps)
	vr := Validate(enriched, caps)
	method := Resolve(caps, d.catalog.Availability(post.Platform), enriched)
	return enriched, vr, method, nil
}

// Share runs one dispatch end to end. The returned error is non-nil only for
// programmer mistakes (unknown platform, missing sender wiring); every
// expected outcome, including failures, is expressed in the ShareResult.
//
// Cancellation is honored at the suspension points before the sender call
// and never after it, so at most one external send happens per dispatch.
func (d *Dispatcher) Share(ctx context.Context, post Post, prefs Preferences) (ShareResult, error) {
	attempt := uuid.NewString()
	result := ShareResult{AttemptID: attempt, Platform: post.Platform}
	state := stateCreated
	logutil.Debugf("dispatch %s: state=%s platform=%s", attempt, state, post.Platform)

	caps, err := d.catalog.Capabilities(post.Platform)
	if err != nil {
		return ShareResult{}, err
	}

	enriched := ApplyPreferences(post, prefs, caps)
	state = statePreferencesApplied
	logutil.Debugf("dispatch %s: state=%s hashtags=%d mentions=%d", attempt, state, len(enriched.Hashtags), len(enriched.Mentions))

	result.Validation = Validate(enriched, caps)
	state = stateValidated
	logutil.Debugf("dispatch %s: state=%s errors=%d warnings=%d", attempt, state, len(result.Validation.Errors), len(result.Validation.Warnings))
	if !result.Validation.Valid() {
		result.Code = ResultInvalid
		result.Message = fmt.Sprintf("content failed %d validation check(s)", len(result.Validation.Errors))
		return result, nil
	}

	avail := d.catalog.Availability(post.Platform)
	method := Resolve(caps, avail, enriched)
	result.Method = method
	state = stateMethodResolved
	logutil.Debugf("dispatch %s: state=%s method=%s installed=%t", attempt, state, method, avail.Installed)

	switch {
	case method == MethodNotSupported:
		result.Code = ResultNotSupported
		result.Message = fmt.Sprintf("%s is not installed and has no web fallback", caps.DisplayName)
		return result, nil
	case method == MethodVendorSdk && !avail.Installed:
		result.Code = ResultNotInstalled
		result.Message = fmt.Sprintf("%s requires its app for this share", caps.DisplayName)
		return result, nil
	}

	sender := d.senders.forMethod(method)
	if sender == nil {
		return ShareResult{}, fmt.Errorf("no sender wired for method %s", method)
	}

	if err := ctx.Err(); err != nil {
		result.Code = ResultCancelled
		result.Message = "cancelled before dispatch"
		return result, nil
	}

	sendErr := sender.Send(ctx, bundleFrom(enriched))
	state = stateDispatched
	logutil.Debugf("dispatch %s: state=%s sender=%s err=%v", attempt, state, sender.Name(), sendErr)

	var cancelled UserCancelledError
	switch {
	case sendErr == nil:
		result.Success = true
		result.Code = ResultOK
		result.Message = fmt.Sprintf("shared to %s via %s", caps.DisplayName, method)
	case errors.As(sendErr, &cancelled) || errors.Is(sendErr, context.Canceled):
		result.Code = ResultCancelled
		result.Message = sendErr.Error()
	default:
		result.Code = ResultSenderError
		result.Message = sendErr.Error()
		logutil.Errorf("dispatch %s: sender %s failed: %v", attempt, sender.Name(), sendErr)
	}

	state = stateCompleted
	logutil.Debugf("dispatch %s: state=%s success=%t code=%s", attempt, state, result.Success, result.Code)
	return result, nil
}

func bundleFrom(p Post) Bundle {
	return Bundle{
		Platform: p.Platform,
		Title:    p.Title,
		Text:     p.Text,
		URL:      p.URL,
		Media:    append([]Media(nil), p.Media...),
		Hashtags: append([]string(nil), p.Hashtags...),
		Mentions: append([]string(nil), p.Mentions...),
	}
}
