package constants

const (
	CreateRoomPath        = "/CreateRoom"        // 创建房间
	RandomJoinRoomPath    = "/RandomJoinRoom"    // 快速加入
	JoinRoomPath          = "/JoinRoom/:room_id" // 加入房间
	LeaveRoomPath         = "/LeaveRoom/:room_id"
	UpdateReadyPath       = "/UpdateReady/:room_id"       // 更新准备状态
	StartRoomPath         = "/StartRoom/:room_id"         // 开始对局, 仅房主
	DeleteRoomPath        = "/DeleteRoom/:room_id"        // 删除房间, 仅房主
	GetRoomDetailsPath    = "/GetRoomDetails/:room_id"    // 获取房间详情
	GetUserRoomsPath      = "/GetUserRooms"               // 获取当前用户所在房间列表
	GetPublicRoomsPath    = "/GetPublicRooms"             // 获取公开房间列表
	ExportRoomResultsPath = "/ExportRoomResults/:room_id" // 导出房间对局结果
)

const (
	SubmitCodePath         = "/SubmitCode"                   // 提交代码判题
	GetSubmissionPath      = "/GetSubmission/:submission_id" // 获取提交记录
	GetUserSubmissionsPath = "/GetUserSubmissions"           // 获取当前用户提交列表
)

const (
	GetProblemListPath = "/GetProblemList"         // 获取题目列表
	GetProblemPath     = "/GetProblem/:problem_id" // 获取题目
)
