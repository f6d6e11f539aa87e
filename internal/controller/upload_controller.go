package controller

import (
	"path/filepath"
	"school_survey_backend/internal/service"
	"school_survey_backend/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// 证据图片上限 10MB
const maxEvidenceSize = 10 << 20

type UploadController struct {
	Storage *service.StorageService
}

func NewUploadController(storage *service.StorageService) *UploadController {
	return &UploadController{Storage: storage}
}

// UploadEvidence godoc
// @Summary 上传同意书等证据图片
// @Description 返回可访问的URL，由审核员贴进问卷的同意书说明里
// @Tags 审核
// @Accept multipart/form-data
// @Produce json
// @Security ApiKeyAuth
// @Param file formData file true "图片文件"
// @Success 200 {object} util.Response{data=map[string]string}
// @Failure 400 {object} util.Response
// @Router /api/admin/uploads/evidence [post]
func (c *UploadController) UploadEvidence(ctx *gin.Context) {
	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		util.BadRequest(ctx, "缺少文件")
		return
	}

	if fileHeader.Size > maxEvidenceSize {
		util.BadRequest(ctx, "文件过大")
		return
	}

	src, err := fileHeader.Open()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	defer src.Close()

	filename := "evidence/" + uuid.New().String() + filepath.Ext(fileHeader.Filename)
	contentType := fileHeader.Header.Get("Content-Type")

	url, err := c.Storage.Upload(ctx.Request.Context(), filename, src, fileHeader.Size, contentType)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{"url": url})
}
