package spec

// SetID 為 sample set 的識別編號。
// 唯一性只保證在「同一個 Enrichlab instance」內。
type SetID int64
