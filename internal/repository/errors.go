package repository

import "errors"

var (
	ErrSkillNotFound       = errors.New("skill not found")
	ErrSkillDuplicate      = errors.New("skill already exists")
	ErrSkillRecordNotFound = errors.New("skill record not found")
	ErrCourseNotFound      = errors.New("course not found")
	ErrCareerPathNotFound  = errors.New("career path not found")
	ErrCareerPathDuplicate = errors.New("career path already exists")
	ErrLearnerNotFound     = errors.New("learner not found")
)
