package model

import "time"

type AuditAction string

const (
	//注文ステータスを更新した操作。
	AuditActionUpdateOrderStatus AuditAction = "UPDATE_ORDER_STATUS"
	//トランシェ台帳を再初期化した操作（破壊的なので必ず記録する）。
	AuditActionReinitTranches AuditAction = "REINIT_TRANCHES"
)

type AuditResourceType string

const (
	AuditResourceOrder AuditResourceType = "order"
)

// 監査ログ。「誰が」「何を」「どの対象に」「どう変えたか」を残す。
// 台帳の再初期化は支払履歴を捨てる操作なので、before/afterに台帳のJSONを残す。
type AuditLog struct {
	ID           int64             `gorm:"primaryKey;autoIncrement" json:"id"`
	ActorUserID  int64             `gorm:"not null;index" json:"actor_user_id"`
	Action       AuditAction       `gorm:"type:varchar(50);not null;index" json:"action"`
	ResourceType AuditResourceType `gorm:"type:varchar(50);not null;index" json:"resource_type"`
	ResourceID   int64             `gorm:"not null;index" json:"resource_id"`
	BeforeJSON   string            `gorm:"type:text" json:"before_json"`
	AfterJSON    string            `gorm:"type:text" json:"after_json"`
	CreatedAt    time.Time         `gorm:"not null;index" json:"created_at"`
}
