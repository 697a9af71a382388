package errors

func (d Definition) Error() string {
	return d.Message
}

// Definition 表示业务错误码及默认信息。
type Definition struct {
	Code    string
	Message string
}

// 认证相关错误。
var (
	CaptchaRateLimited         = Definition{Code: "CAPTCHA_RATE_LIMITED", Message: "Captcha rate limited"}
	VerificationCodeExpired    = Definition{Code: "VERIFICATION_CODE_EXPIRED", Message: "Verification code expired"}
	VerificationCodeInvalid    = Definition{Code: "VERIFICATION_CODE_INVALID", Message: "Verification code invalid"}
	VerificationSliderRequired = Definition{Code: "VERIFICATION_SLIDER_REQUIRED", Message: "Slider verification required"}
	VerificationSliderFailed   = Definition{Code: "VERIFICATION_SLIDER_FAILED", Message: "Slider verification failed"}
	Unauthorized               = Definition{Code: "UNAUTHORIZED", Message: "Unauthorized"}
	InvalidUserID              = Definition{Code: "INVALID_USER_ID", Message: "Invalid user ID format"}
	InvalidPhone               = Definition{Code: "INVALID_PHONE", Message: "Invalid phone number"}
)

// 通用错误。
var (
	TooManyRequests = Definition{Code: "TOO_MANY_REQUESTS", Message: "Too many requests"}
	InternalError   = Definition{Code: "INTERNAL_ERROR", Message: "Internal server error"}
)

// 线索模块错误。
var (
	LeadNotFound   = Definition{Code: "LEAD_NOT_FOUND", Message: "Lead not found"}
	LeadDuplicate  = Definition{Code: "LEAD_DUPLICATE", Message: "该手机号的线索已存在"}
	InvalidProduct = Definition{Code: "INVALID_PRODUCT", Message: "Invalid product category"}
)

// 筛选条件模块错误。
var (
	ConditionTypeUsed    = Definition{Code: "CONDITION_TYPE_USED", Message: "Condition type already selected"}
	ConditionTypeUnknown = Definition{Code: "CONDITION_TYPE_UNKNOWN", Message: "Unknown condition type"}
	TimeTokenInvalid     = Definition{Code: "TIME_TOKEN_INVALID", Message: "Unknown time range token"}
	CustomRangeEmpty     = Definition{Code: "CUSTOM_RANGE_EMPTY", Message: "Custom time range needs a start or an end"}
)

// 任务模块错误。
var (
	TaskNotFound       = Definition{Code: "TASK_NOT_FOUND", Message: "Task not found"}
	TaskStateInvalid   = Definition{Code: "TASK_STATE_INVALID", Message: "Task is not in a state that allows this operation"}
	TaskNoLeadsMatched = Definition{Code: "TASK_NO_LEADS_MATCHED", Message: "No leads matched the task conditions"}
	TaskScriptMissing  = Definition{Code: "TASK_SCRIPT_MISSING", Message: "Task has no script bound"}
	TaskAlreadyStarted = Definition{Code: "TASK_ALREADY_STARTED", Message: "Task already started"}
)

// 话术场景模块错误。
var (
	SceneNotFound    = Definition{Code: "SCENE_NOT_FOUND", Message: "Scene not found"}
	SceneReadOnly    = Definition{Code: "SCENE_READ_ONLY", Message: "Official scenes are read-only"}
	SceneIncomplete  = Definition{Code: "SCENE_INCOMPLETE", Message: "Required scene fields are missing"}
	SceneTagRequired = Definition{Code: "SCENE_TAG_REQUIRED", Message: "At least one scene tag is required"}
)

// 创建向导模块错误。
var (
	WizardSessionNotFound = Definition{Code: "WIZARD_SESSION_NOT_FOUND", Message: "Wizard session not found or expired"}
	WizardEventInvalid    = Definition{Code: "WIZARD_EVENT_INVALID", Message: "Event not allowed in current wizard phase"}
	WizardKindUnknown     = Definition{Code: "WIZARD_KIND_UNKNOWN", Message: "Unknown wizard kind"}
	OptionValueInvalid    = Definition{Code: "OPTION_VALUE_INVALID", Message: "Value is not one of the condition's options"}
)

// SkipMessageError 表示消费侧应当 ack 并跳过的消息（重复投递等）。
type SkipMessageError struct {
	Reason string
}

func (e *SkipMessageError) Error() string {
	return e.Reason
}

// Lookup 提供错误码查询能力。
var Lookup = map[string]Definition{
	CaptchaRateLimited.Code:         CaptchaRateLimited,
	VerificationCodeExpired.Code:    VerificationCodeExpired,
	VerificationCodeInvalid.Code:    VerificationCodeInvalid,
	VerificationSliderRequired.Code: VerificationSliderRequired,
	VerificationSliderFailed.Code:   VerificationSliderFailed,
	Unauthorized.Code:               Unauthorized,
	InvalidUserID.Code:              InvalidUserID,
	InvalidPhone.Code:               InvalidPhone,
	TooManyRequests.Code:            TooManyRequests,
	InternalError.Code:              InternalError,
	LeadNotFound.Code:               LeadNotFound,
	LeadDuplicate.Code:              LeadDuplicate,
	InvalidProduct.Code:             InvalidProduct,
	ConditionTypeUsed.Code:          ConditionTypeUsed,
	ConditionTypeUnknown.Code:       ConditionTypeUnknown,
	TimeTokenInvalid.Code:           TimeTokenInvalid,
	CustomRangeEmpty.Code:           CustomRangeEmpty,
	TaskNotFound.Code:               TaskNotFound,
	TaskStateInvalid.Code:           TaskStateInvalid,
	TaskNoLeadsMatched.Code:         TaskNoLeadsMatched,
	TaskScriptMissing.Code:          TaskScriptMissing,
	TaskAlreadyStarted.Code:         TaskAlreadyStarted,
	SceneNotFound.Code:              SceneNotFound,
	SceneReadOnly.Code:              SceneReadOnly,
	SceneIncomplete.Code:            SceneIncomplete,
	SceneTagRequired.Code:           SceneTagRequired,
	WizardSessionNotFound.Code:      WizardSessionNotFound,
	WizardEventInvalid.Code:         WizardEventInvalid,
	WizardKindUnknown.Code:          WizardKindUnknown,
	OptionValueInvalid.Code:         OptionValueInvalid,
}

// Get 根据错误码返回 Definition，若不存在则返回兜底 Definition。
func Get(code string) Definition {
	if def, ok := Lookup[code]; ok {
		return def
	}
	return Definition{Code: code, Message: "Unexpected error"}
}
