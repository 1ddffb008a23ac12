// internal/models/dashboard.go
package models

import "time"

type DashboardCounts struct {
	ActiveCandidates int64 `json:"activeCandidates"`
	OpenJobs         int64 `json:"openJobs"`
	ActiveClients    int64 `json:"activeClients"`
	TotalAssignments int64 `json:"totalAssignments"`
}

type ClientJobCount struct {
	CompanyName string `json:"company_name"`
	JobCount    int64  `json:"job_count"`
}

type SkillCount struct {
	Skill string `json:"skill"`
	Count int    `json:"count"`
}

type DashboardStats struct {
	Stats               DashboardCounts  `json:"stats"`
	AssignmentsByStatus []StatusCount    `json:"assignmentsByStatus"`
	RecentPlacements    []AssignmentView `json:"recentPlacements"`
	JobsByClient        []ClientJobCount `json:"jobsByClient"`
	TopSkills           []SkillCount     `json:"topSkills"`
}

type RecentCandidate struct {
	ID        int64     `json:"id"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Email     string    `json:"email"`
	Skills    *string   `json:"skills"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

type RecentJobOrder struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	CompanyName string    `json:"company_name"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
}

type RecentActivity struct {
	RecentCandidates  []RecentCandidate `json:"recentCandidates"`
	RecentJobOrders   []RecentJobOrder  `json:"recentJobOrders"`
	RecentAssignments []AssignmentView  `json:"recentAssignments"`
}
