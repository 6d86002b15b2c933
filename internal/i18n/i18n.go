// Package i18n provides the localized diagnostic messages of the toolchain.
package i18n

import (
	"fmt"
	"sync"
)

// Language selects a message catalog.
type Language string

const (
	LangEnglish Language = "en"
	LangChinese Language = "zh"
)

var (
	currentLang Language = LangEnglish
	mu          sync.RWMutex
)

// SetLanguage sets the active catalog.
func SetLanguage(lang Language) {
	mu.Lock()
	defer mu.Unlock()
	currentLang = lang
}

// SetLanguageFromString accepts locale-style spellings ("zh-cn", "chinese").
func SetLanguageFromString(lang string) {
	switch lang {
	case "zh", "zh-cn", "zh-tw", "zh-hk", "chinese":
		SetLanguage(LangChinese)
	default:
		SetLanguage(LangEnglish)
	}
}

// GetLanguage returns the active catalog language.
func GetLanguage() Language {
	mu.RLock()
	defer mu.RUnlock()
	return currentLang
}

// T formats the message identified by msgID in the active language.
// Unknown identifiers are returned as-is so a missing catalog entry is
// visible instead of silent.
func T(msgID string, args ...interface{}) string {
	mu.RLock()
	lang := currentLang
	mu.RUnlock()

	var messages map[string]string
	switch lang {
	case LangChinese:
		messages = messagesZH
	default:
		messages = messagesEN
	}

	msg, ok := messages[msgID]
	if !ok {
		// Fall back to English before giving up.
		if msg, ok = messagesEN[msgID]; !ok {
			return msgID
		}
	}

	if len(args) > 0 {
		return fmt.Sprintf(msg, args...)
	}
	return msg
}

// ============================================================================
// Message identifiers
// ============================================================================

const (
	// ---------- Lexer ----------
	ErrUnexpectedChar     = "lex.unexpected_char"
	ErrUnexpectedBang     = "lex.unexpected_bang"
	ErrUnterminatedString = "lex.unterminated_string"
	ErrUnterminatedTriple = "lex.unterminated_triple"
	ErrInvalidEscape      = "lex.invalid_escape"
	ErrInvalidNumber      = "lex.invalid_number"
	ErrInvalidDigit       = "lex.invalid_digit"
	ErrMissingDigits      = "lex.missing_digits"
	ErrMissingExponent    = "lex.missing_exponent"
	ErrMixedIndent        = "lex.mixed_indent"
	ErrDedentMismatch     = "lex.dedent_mismatch"

	// ---------- Parser ----------
	ErrExpected           = "parse.expected"
	ErrExpectedAfter      = "parse.expected_after"
	ErrExpectedExpression = "parse.expected_expression"
	ErrUnexpectedIndent   = "parse.unexpected_indent"
	ErrUnexpectedDedent   = "parse.unexpected_dedent"
	ErrUnexpectedThen     = "parse.unexpected_then"
	ErrCannotAssign       = "parse.cannot_assign"
	ErrMultipleStarred    = "parse.multiple_starred"
	ErrStarredHere        = "parse.starred_here"
	ErrAugTarget          = "parse.aug_target"
	ErrAnnTarget          = "parse.ann_target"
	ErrWalrusTarget       = "parse.walrus_target"
	ErrDupSlash           = "parse.dup_slash"
	ErrSlashAfterStar     = "parse.slash_after_star"
	ErrSlashAfterKwargs   = "parse.slash_after_kwargs"
	ErrDupStar            = "parse.dup_star"
	ErrStarAfterKwargs    = "parse.star_after_kwargs"
	ErrDupKwargs          = "parse.dup_kwargs"
	ErrParamAfterKwargs   = "parse.param_after_kwargs"
	ErrDefaultOrder       = "parse.default_order"
	ErrAsyncWithoutDef    = "parse.async_without_def"
	ErrDupMetaclass       = "parse.dup_metaclass"
	ErrBaseAfterKeyword   = "parse.base_after_keyword"
	ErrWildcardAlias      = "parse.wildcard_alias"
	ErrWildcardCombine    = "parse.wildcard_combine"
	ErrEmptyBlock         = "parse.empty_block"
	ErrNestingTooDeep     = "parse.nesting_too_deep"
	ErrStmtNotSupported   = "parse.stmt_not_supported"
	ErrExprNotSupported   = "parse.expr_not_supported"
	ErrTooManyErrors      = "parse.too_many_errors"

	// ---------- Suggestions ----------
	SuggDidYouMean = "suggest.did_you_mean"
	SuggRemoveThen = "suggest.remove_then"

	// ---------- CLI ----------
	CliReadError    = "cli.read_error"
	CliCheckOK      = "cli.check_ok"
	CliErrorCount   = "cli.error_count"
	CliBuildPending = "cli.build_pending"
	CliConfigExists = "cli.config_exists"
	CliCreating     = "cli.creating"
)
