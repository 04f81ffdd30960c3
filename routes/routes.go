package routes

import (
    "backend/config"
    "backend/controllers"
    "backend/middlewares"
    "backend/services"

    "github.com/gin-gonic/gin"
    "github.com/rs/zerolog/log"
)

func SetupRouter() *gin.Engine {
    r := gin.Default()

    patientSvc := services.NewPatientService(config.DB)
    measurementSvc := services.NewMeasurementService(config.DB, patientSvc)

    rekSvc, err := services.NewRekognitionService()
    if err != nil {
        log.Warn().Err(err).Msg("rekognition unavailable, food photo recognition disabled")
        rekSvc = nil
    }
    foodSvc := services.NewFoodService(config.DB, rekSvc)
    planSvc := services.NewPlanService(config.DB, patientSvc, foodSvc)
    analyticsSvc := services.NewAnalyticsService(config.DB, patientSvc)

    rtHub := services.NewRealtimeHub()
    pushSvc, err := services.NewPushService(config.DB)
    if err != nil {
        log.Warn().Err(err).Msg("push service unavailable, device notifications disabled")
        pushSvc = nil
    }
    services.InitAlertDeps(config.DB, rtHub, pushSvc)

    patientCtl := controllers.NewPatientController(patientSvc)
    measurementCtl := controllers.NewMeasurementController(measurementSvc)
    foodCtl := controllers.NewFoodController(foodSvc)
    planCtl := controllers.NewPlanController(planSvc)
    protocolCtl := controllers.NewProtocolController(patientSvc)
    analyticsCtl := controllers.NewAnalyticsController(analyticsSvc)
    deviceCtl := controllers.NewDeviceController(pushSvc)
    realtimeCtl := controllers.NewRealtimeController(rtHub)

    // Public auth routes
    auth := r.Group("/auth")
    {
        auth.POST("/register", controllers.Register)
        auth.POST("/login", controllers.Login)
        auth.POST("/verify-mfa", controllers.VerifyMFA)
        auth.POST("/forgot-password", controllers.ForgotPassword)
        auth.POST("/reset-password", controllers.ResetPassword)
    }

    // Protected user routes
    user := r.Group("/user")
    user.Use(middlewares.AuthMiddleware())
    {
        user.GET("/profile", controllers.GetProfile)
        user.PUT("/profile", controllers.UpdateProfile)
        user.DELETE("/account", controllers.DeleteAccount)
        user.POST("/notifications/toggle", controllers.ToggleNotifications)
    }

    patients := r.Group("/patients")
    patients.Use(middlewares.AuthMiddleware())
    {
        patients.GET("", patientCtl.List)
        patients.POST("", patientCtl.Create)
        patients.GET("/:id", patientCtl.Get)
        patients.PUT("/:id", patientCtl.Update)
        patients.DELETE("/:id", patientCtl.Delete)
        patients.POST("/:id/photo", patientCtl.UploadPhoto)

        patients.POST("/:id/measurements", measurementCtl.Create)
        patients.GET("/:id/measurements", measurementCtl.List)
        patients.GET("/:id/measurements/:mid", measurementCtl.Get)
        patients.DELETE("/:id/measurements/:mid", measurementCtl.Delete)
        patients.GET("/:id/growth", measurementCtl.Growth)

        patients.GET("/:id/goals", planCtl.ResolveGoals)
        patients.POST("/:id/plans/generate", planCtl.GenerateWeekly)
        patients.POST("/:id/plans", planCtl.Save)

        patients.GET("/:id/protocols/pediatric", protocolCtl.PediatricPlan)
        patients.POST("/:id/protocols/anemia", protocolCtl.IronProtocol)

        patients.GET("/:id/trends", analyticsCtl.GetTrends)
        patients.GET("/:id/summary", analyticsCtl.GetSummary)
    }

    plans := r.Group("/plans")
    plans.Use(middlewares.AuthMiddleware())
    {
        plans.GET("", planCtl.ListSaved)
        plans.POST("/edit", planCtl.Edit)
        plans.GET("/:planID", planCtl.GetSaved)
        plans.POST("/:planID/clone", planCtl.CloneSaved)
        plans.DELETE("/:planID", planCtl.DeleteSaved)
    }

    foods := r.Group("/foods")
    foods.Use(middlewares.AuthMiddleware())
    {
        foods.GET("", foodCtl.Search)
        foods.POST("", foodCtl.Create)
        foods.GET("/:id", foodCtl.Get)
        foods.PUT("/:id", foodCtl.Update)
        foods.DELETE("/:id", foodCtl.Delete)
        foods.POST("/recognize", foodCtl.Recognize)
    }

    alerts := r.Group("/alerts")
    alerts.Use(middlewares.AuthMiddleware())
    {
        alerts.GET("", controllers.ListAlerts)
    }

    devices := r.Group("/devices")
    devices.Use(middlewares.AuthMiddleware())
    {
        devices.POST("/register", deviceCtl.Register)
    }

    ws := r.Group("/ws")
    ws.Use(middlewares.AuthMiddleware())
    {
        ws.GET("/alerts", realtimeCtl.AlertsWS)
    }

    return r
}
