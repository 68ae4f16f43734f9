package i18n

import "strings"

// Language 描述用户希望使用的界面语言，使用简短语言代码（如 en、zh）。
type Language string

const (
	LanguageEnglish Language = "en"
	LanguageChinese Language = "zh"

	// DefaultLanguage 未配置时的默认语言。
	DefaultLanguage = LanguageEnglish
)

// Normalize 将用户输入的语言值转换为统一的语言代码。
// 空字符串回退到默认语言，未知值原样保留。
func Normalize(value string) Language {
	lang := strings.ToLower(strings.TrimSpace(value))
	switch lang {
	case "":
		return DefaultLanguage
	case "zh", "zh-cn", "zh_cn", "zh-hans", "cn", "chinese", "中文":
		return LanguageChinese
	case "en", "en-us", "en_us", "en-gb", "english":
		return LanguageEnglish
	default:
		return Language(lang)
	}
}

// Code 返回规范化后的语言代码。
func (l Language) Code() string {
	return string(Normalize(string(l)))
}

// Catalog 汇总界面上所有固定文案。
type Catalog struct {
	Welcome       string
	HelpHint      string
	Help          string
	FailureNotice string
	Thinking      string
	Placeholder   string
	Copied        string
	NothingToCopy string
}

var english = Catalog{
	Welcome:  "Welcome to the TUI Assistant!",
	HelpHint: "Type 'help' for a list of commands.",
	Help: "Available commands:\n" +
		"- 'help': Shows this message.\n" +
		"- 'clear': Clears the terminal history.\n" +
		"- Any other text will be sent to the TUI assistant.",
	FailureNotice: "An error occurred while communicating with the AI.",
	Thinking:      "Assistant is thinking...",
	Placeholder:   "Enter a command...",
	Copied:        "copied last reply to clipboard",
	NothingToCopy: "no assistant reply to copy yet",
}

var chinese = Catalog{
	Welcome:  "欢迎使用 TUI 助手！",
	HelpHint: "输入 'help' 查看可用命令。",
	Help: "可用命令：\n" +
		"- 'help'：显示本帮助。\n" +
		"- 'clear'：清空终端历史。\n" +
		"- 其他任何文本都会发送给 TUI 助手。",
	FailureNotice: "与 AI 通信时发生错误。",
	Thinking:      "助手正在思考...",
	Placeholder:   "输入命令...",
	Copied:        "已复制最近一次回复",
	NothingToCopy: "暂无可复制的回复",
}

// Messages 返回语言对应的文案，未知语言回退到英文。
func Messages(l Language) Catalog {
	switch Normalize(string(l)) {
	case LanguageChinese:
		return chinese
	default:
		return english
	}
}
