// Package access is the single authorization chain for every school/subject
// scoped operation: school membership first, then subject teacher status,
// with a school-ADMIN bypass of the subject-level check.
package access

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	schoolModel "schoolku_backend/internals/features/school/schools/model"
	subjectModel "schoolku_backend/internals/features/school/subjects/model"
)

// MembershipStore is the narrow read surface the engine decides against.
// Implementations return (nil, nil) when the entity does not exist;
// the engine never distinguishes "row absent" from "row not ACCEPT".
type MembershipStore interface {
	GetSchool(ctx context.Context, id uuid.UUID) (*schoolModel.SchoolModel, error)
	GetMemberOnSchool(ctx context.Context, userID, schoolID uuid.UUID) (*schoolModel.MemberOnSchoolModel, error)
	GetSubject(ctx context.Context, id uuid.UUID) (*subjectModel.SubjectModel, error)
	GetTeacherOnSubject(ctx context.Context, userID, subjectID uuid.UUID) (*subjectModel.TeacherOnSubjectModel, error)
	ListStudentOnSubjectsBySubject(ctx context.Context, subjectID uuid.UUID) ([]subjectModel.StudentOnSubjectModel, error)
}

// SubjectGrant carries what a passed subject-level check resolved.
// Teacher is nil when the caller got through on the school-ADMIN bypass.
type SubjectGrant struct {
	Subject *subjectModel.SubjectModel
	Member  *schoolModel.MemberOnSchoolModel
	Teacher *subjectModel.TeacherOnSubjectModel
}

type Engine struct {
	store MembershipStore
}

func NewEngine(store MembershipStore) *Engine {
	return &Engine{store: store}
}

// Store exposes the underlying membership reads for managers that need
// enrollment listings next to their authorization checks.
func (e *Engine) Store() MembershipStore { return e.store }

// AuthorizeSchoolMember passes iff a MemberOnSchool row exists with
// status ACCEPT. A missing row and a non-ACCEPT row are the same denial.
func (e *Engine) AuthorizeSchoolMember(ctx context.Context, userID, schoolID uuid.UUID) (*schoolModel.MemberOnSchoolModel, error) {
	school, err := e.store.GetSchool(ctx, schoolID)
	if err != nil {
		return nil, err
	}
	if school == nil {
		return nil, fiber.NewError(fiber.StatusNotFound, "School not found")
	}

	member, err := e.store.GetMemberOnSchool(ctx, userID, schoolID)
	if err != nil {
		return nil, err
	}
	if member == nil || member.MemberOnSchoolStatus != schoolModel.MemberStatusAccept {
		return nil, fiber.NewError(fiber.StatusForbidden, "not a member of this school")
	}
	return member, nil
}

// AuthorizeSubjectTeacher resolves the subject, requires the school-level
// check to pass first, then requires an ACCEPT TeacherOnSubject row unless
// the school membership role is ADMIN. A school admin implicitly
// administers every subject in the school.
func (e *Engine) AuthorizeSubjectTeacher(ctx context.Context, userID, subjectID uuid.UUID) (*SubjectGrant, error) {
	subject, err := e.store.GetSubject(ctx, subjectID)
	if err != nil {
		return nil, err
	}
	if subject == nil {
		return nil, fiber.NewError(fiber.StatusNotFound, "Subject not found")
	}

	member, err := e.AuthorizeSchoolMember(ctx, userID, subject.SubjectSchoolID)
	if err != nil {
		return nil, err
	}

	if member.MemberOnSchoolRole == schoolModel.MemberRoleAdmin {
		return &SubjectGrant{Subject: subject, Member: member}, nil
	}

	teacher, err := e.store.GetTeacherOnSubject(ctx, userID, subjectID)
	if err != nil {
		return nil, err
	}
	if teacher == nil || teacher.TeacherOnSubjectStatus != schoolModel.MemberStatusAccept {
		return nil, fiber.NewError(fiber.StatusForbidden, "not a teacher on this subject")
	}
	return &SubjectGrant{Subject: subject, Member: member, Teacher: teacher}, nil
}
