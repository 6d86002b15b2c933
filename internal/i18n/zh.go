package i18n

var messagesZH = map[string]string{
	// ========== 词法分析 ==========
	ErrUnexpectedChar:     "意外的字符 '%c'",
	ErrUnexpectedBang:     "意外的字符 '!'（是否想输入 '!='？）",
	ErrUnterminatedString: "未闭合的字符串字面量",
	ErrUnterminatedTriple: "未闭合的三引号字符串字面量",
	ErrInvalidEscape:      "无效的转义序列 '\\%c'",
	ErrInvalidNumber:      "无效的数字字面量 '%s'",
	ErrInvalidDigit:       "%[2]s字面量中出现无效数字 '%[1]c'",
	ErrMissingDigits:      "无效的%s字面量：'%s' 后应有数字",
	ErrMissingExponent:    "无效的数字字面量：指数部分应有数字",
	ErrMixedIndent:        "缩进中混用了制表符和空格",
	ErrDedentMismatch:     "回退缩进与任何外层缩进级别都不匹配",

	// ========== 语法分析 ==========
	ErrExpected:           "期望 %s，但遇到 %s",
	ErrExpectedAfter:      "%[2]s 之后期望 %[1]s，但遇到 %[3]s",
	ErrExpectedExpression: "期望表达式，但遇到 %s",
	ErrUnexpectedIndent:   "意外的缩进",
	ErrUnexpectedDedent:   "意外的缩进回退",
	ErrUnexpectedThen:     "条件之后出现意外的 'then'",
	ErrCannotAssign:       "无法对%s赋值",
	ErrMultipleStarred:    "赋值目标中出现多个星号表达式",
	ErrStarredHere:        "此处不允许星号表达式",
	ErrAugTarget:          "无效的增量赋值目标",
	ErrAnnTarget:          "无效的注解赋值目标",
	ErrWalrusTarget:       "无法将%s用作 ':=' 的目标",
	ErrDupSlash:           "参数列表中出现重复的 '/'",
	ErrSlashAfterStar:     "参数列表中 '/' 必须位于 '*' 之前",
	ErrSlashAfterKwargs:   "参数列表中 '/' 必须位于 '**' 之前",
	ErrDupStar:            "参数列表中出现重复的 '*'",
	ErrStarAfterKwargs:    "参数列表中 '*' 必须位于 '**' 之前",
	ErrDupKwargs:          "重复的 '**' 参数",
	ErrParamAfterKwargs:   "'**' 参数之后不能再有参数",
	ErrDefaultOrder:       "无默认值的参数不能位于有默认值的参数之后",
	ErrAsyncWithoutDef:    "'async' 之后期望 'def'，但遇到 %s",
	ErrDupMetaclass:       "重复的 'metaclass' 关键字参数",
	ErrBaseAfterKeyword:   "基类不能出现在关键字参数之后",
	ErrWildcardAlias:      "通配符导入不能使用别名",
	ErrWildcardCombine:    "通配符导入不能与其他名称同时使用",
	ErrEmptyBlock:         "代码块不能为空（请使用 'pass'）",
	ErrNestingTooDeep:     "嵌套过深（上限为 %d 层）",
	ErrStmtNotSupported:   "不支持 '%s' 语句",
	ErrExprNotSupported:   "不支持 '%s' 表达式",
	ErrTooManyErrors:      "错误过多，停止解析",

	// ========== 修复建议 ==========
	SuggDidYouMean: "是否想输入 '%s'？",
	SuggRemoveThen: "删除 'then'；代码块从 ':' 之后开始",

	// ========== 命令行 ==========
	CliReadError:    "读取文件失败：%v",
	CliCheckOK:      "%s: 语法正确",
	CliErrorCount:   "发现 %d 个错误",
	CliBuildPending: "后端代码生成尚未接入；已完成语法检查",
	CliConfigExists: "配置文件 %s 已存在",
	CliCreating:     "正在创建 %s",
}
