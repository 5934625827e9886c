package errors

// ErrorCode 业务错误码
type ErrorCode int

// 错误码分配:
// 20000-20999: 系统通用错误
// 21000-21999: 房间模块错误
// 22000-22999: 题目模块错误
// 23000-23999: 提交与判题模块错误
// 24000-24999: 用户模块错误

const (
	Success ErrorCode = 20000

	// 系统通用错误 (20001-20999)
	InternalServerError ErrorCode = 20001
	InvalidParams       ErrorCode = 20002
	Unauthorized        ErrorCode = 20003

	// 房间模块错误 (21000-21999)
	RoomNotFound            ErrorCode = 21000
	RoomNotJoinable         ErrorCode = 21001
	RoomFull                ErrorCode = 21002
	RoomNotWaiting          ErrorCode = 21003
	NotRoomCreator          ErrorCode = 21004
	ParticipantNotFound     ErrorCode = 21005
	MissingProblemSelection ErrorCode = 21006
	NoProblemsAvailable     ErrorCode = 21007

	// 题目模块错误 (22000-22999)
	ProblemNotFound  ErrorCode = 22000
	TestCaseNotFound ErrorCode = 22001

	// 提交与判题模块错误 (23000-23999)
	SubmissionNotFound  ErrorCode = 23000
	ExecutorUnreachable ErrorCode = 23001

	// 用户模块错误 (24000-24999)
	UserNotFound ErrorCode = 24000
)

var errorMessages = map[ErrorCode]string{
	Success:             "Success",
	InternalServerError: "Internal server error",
	InvalidParams:       "Invalid parameters",
	Unauthorized:        "Unauthorized access",

	RoomNotFound:            "Room not found",
	RoomNotJoinable:         "Room is not available to join",
	RoomFull:                "Room is full",
	RoomNotWaiting:          "Room has already started",
	NotRoomCreator:          "Only the room creator can perform this operation",
	ParticipantNotFound:     "Participant not found in room",
	MissingProblemSelection: "Problem id is required in single mode",
	NoProblemsAvailable:     "No problems available for random selection",

	ProblemNotFound:  "Problem not found",
	TestCaseNotFound: "Problem has no test cases",

	SubmissionNotFound:  "Submission not found",
	ExecutorUnreachable: "Code execution service unreachable",

	UserNotFound: "User not found",
}

// Message 返回错误码的默认描述
func (c ErrorCode) Message() string {
	if msg, ok := errorMessages[c]; ok {
		return msg
	}
	return "Unknown error"
}
