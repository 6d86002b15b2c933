package i18n

var messagesEN = map[string]string{
	// ========== Lexer ==========
	ErrUnexpectedChar:     "Unexpected character '%c'",
	ErrUnexpectedBang:     "Unexpected character '!' (did you mean '!='?)",
	ErrUnterminatedString: "Unterminated string literal",
	ErrUnterminatedTriple: "Unterminated triple-quoted string literal",
	ErrInvalidEscape:      "Invalid escape sequence '\\%c'",
	ErrInvalidNumber:      "Invalid number literal '%s'",
	ErrInvalidDigit:       "Invalid digit '%c' in %s literal",
	ErrMissingDigits:      "Invalid %s literal: expected digits after '%s'",
	ErrMissingExponent:    "Invalid number literal: expected digits in exponent",
	ErrMixedIndent:        "Inconsistent use of tabs and spaces in indentation",
	ErrDedentMismatch:     "Unindent does not match any outer indentation level",

	// ========== Parser ==========
	ErrExpected:           "Expected %s, found %s",
	ErrExpectedAfter:      "Expected %s after %s, found %s",
	ErrExpectedExpression: "Expected expression, found %s",
	ErrUnexpectedIndent:   "Unexpected indent",
	ErrUnexpectedDedent:   "Unexpected dedent",
	ErrUnexpectedThen:     "Unexpected 'then' after condition",
	ErrCannotAssign:       "Cannot assign to %s",
	ErrMultipleStarred:    "Multiple starred expressions in assignment target",
	ErrStarredHere:        "Starred expression is not allowed here",
	ErrAugTarget:          "Invalid target for augmented assignment",
	ErrAnnTarget:          "Invalid target for annotated assignment",
	ErrWalrusTarget:       "Cannot use %s as a target for ':='",
	ErrDupSlash:           "Duplicate '/' in parameter list",
	ErrSlashAfterStar:     "'/' must come before '*' in parameter list",
	ErrSlashAfterKwargs:   "'/' must come before '**' in parameter list",
	ErrDupStar:            "Duplicate '*' in parameter list",
	ErrStarAfterKwargs:    "'*' must come before '**' in parameter list",
	ErrDupKwargs:          "Duplicate '**' parameter",
	ErrParamAfterKwargs:   "Parameter cannot appear after '**' parameter",
	ErrDefaultOrder:       "Parameter without default cannot follow parameter with default",
	ErrAsyncWithoutDef:    "Expected 'def' after 'async', found %s",
	ErrDupMetaclass:       "Duplicate 'metaclass' keyword argument",
	ErrBaseAfterKeyword:   "Base class cannot appear after keyword argument",
	ErrWildcardAlias:      "Wildcard import cannot have an alias",
	ErrWildcardCombine:    "Wildcard import cannot be combined with other names",
	ErrEmptyBlock:         "Block cannot be empty (use 'pass')",
	ErrNestingTooDeep:     "Nesting too deep (limit is %d levels)",
	ErrStmtNotSupported:   "'%s' statements are not supported",
	ErrExprNotSupported:   "'%s' expressions are not supported",
	ErrTooManyErrors:      "Too many errors, stopping",

	// ========== Suggestions ==========
	SuggDidYouMean: "Did you mean '%s'?",
	SuggRemoveThen: "Remove 'then'; the block starts after ':'",

	// ========== CLI ==========
	CliReadError:    "Error reading file: %v",
	CliCheckOK:      "%s: syntax OK",
	CliErrorCount:   "%d error(s) found",
	CliBuildPending: "Backend code generation is not wired up yet; syntax was checked",
	CliConfigExists: "Config file %s already exists",
	CliCreating:     "Creating %s",
}
